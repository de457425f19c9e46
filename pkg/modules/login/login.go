package login

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const (
	LoginActionKey = "loginAction"

	inactiveUserMessage = "Usuario no activo"
)

// Result is a successful sign-in: the bearer token and the user it belongs to.
type Result struct {
	Token string
	User  session.User
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

// Login rejects inactive users even when the API accepted the credentials.
func (g *Gateway) Login(ctx context.Context, email, password string) (Result, error) {
	data, err := gateway.Expect(g.client.Post(ctx, "/admin-users/login", map[string]string{
		"email":    email,
		"password": password,
	}))
	if err != nil {
		return Result{}, err
	}

	user, err := gateway.Require(data, "user")
	if err != nil {
		return Result{}, err
	}
	if !user.Get("status").Bool() {
		return Result{}, gateway.Reject(inactiveUserMessage)
	}
	return toResult(data, user)
}

func toResult(data, user gjson.Result) (Result, error) {
	token, err := gateway.Require(data, "token")
	if err != nil {
		return Result{}, err
	}
	return Result{
		Token: token.String(),
		User: session.User{
			ID:        user.Get("id").String(),
			Email:     user.Get("email").String(),
			Name:      user.Get("name").String(),
			Role:      session.ParseRole(gateway.First(user, "rol", "role").String()),
			CreatedAt: user.Get("createdAt").String(),
			LastLogin: user.Get("lastLogin").String(),
		},
	}, nil
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (Result, error)
}

type LoginAction struct {
	gateway Authenticator
}

func NewLoginAction(g Authenticator) *LoginAction {
	return &LoginAction{gateway: g}
}

func (a *LoginAction) Execute(ctx context.Context, email, password string) (Result, error) {
	return a.gateway.Login(ctx, email, password)
}

type Views interface {
	OnLoginSuccess(result Result)
	OnLoginError(err error)
}

type Presenter struct {
	login *LoginAction
	views Views
}

func NewPresenter(login *LoginAction, views Views) *Presenter {
	return &Presenter{login: login, views: views}
}

func (p *Presenter) Login(ctx context.Context, email, password string) {
	result, err := p.login.Execute(ctx, email, password)
	if err != nil {
		p.views.OnLoginError(err)
		return
	}
	p.views.OnLoginSuccess(result)
}
