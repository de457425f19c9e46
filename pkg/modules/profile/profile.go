package profile

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const (
	GetProfileActionKey    = "getProfileAction"
	UpdateProfileActionKey = "updateProfileAction"

	getFailedMessage    = "Error al obtener perfil"
	updateFailedMessage = "Error al actualizar perfil"
)

// Profile is the signed-in admin's own account.
type Profile struct {
	ID        string
	Email     string
	Name      string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// UpdatePayload carries the fields to change; nil fields are not sent.
type UpdatePayload struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

func (p UpdatePayload) body() map[string]string {
	body := map[string]string{}
	for key, v := range map[string]*string{
		"name":            p.Name,
		"email":           p.Email,
		"currentPassword": p.CurrentPassword,
		"password":        p.NewPassword,
	} {
		if v != nil {
			body[key] = *v
		}
	}
	return body
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) GetByID(ctx context.Context, id string) (Profile, error) {
	env, err := g.client.Get(ctx, "/admin-users/"+id, nil)
	data, err := gateway.ExpectOr(env, err, getFailedMessage)
	if err != nil {
		return Profile{}, err
	}
	return toProfile(data)
}

func (g *Gateway) Update(ctx context.Context, id string, payload UpdatePayload) (Profile, error) {
	env, err := g.client.Patch(ctx, "/admin-users/"+id, payload.body())
	data, err := gateway.ExpectOr(env, err, updateFailedMessage)
	if err != nil {
		return Profile{}, err
	}
	return toProfile(data)
}

// toProfile tolerates an empty payload, yielding blank fields.
func toProfile(data gjson.Result) (Profile, error) {
	createdAt, err := gateway.FormatOptionalDate(data, "createdAt")
	if err != nil {
		return Profile{}, err
	}
	updatedAt, err := gateway.FormatOptionalDate(data, "updatedAt")
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:        data.Get("id").String(),
		Email:     data.Get("email").String(),
		Name:      data.Get("name").String(),
		Role:      session.ParseRole(gateway.First(data, "rol", "role").String()),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

type Reader interface {
	GetByID(ctx context.Context, id string) (Profile, error)
}

type Updater interface {
	Update(ctx context.Context, id string, payload UpdatePayload) (Profile, error)
}

type GetProfileAction struct{ gateway Reader }

func NewGetProfileAction(g Reader) *GetProfileAction {
	return &GetProfileAction{gateway: g}
}

func (a *GetProfileAction) Execute(ctx context.Context, id string) (Profile, error) {
	return a.gateway.GetByID(ctx, id)
}

type UpdateProfileAction struct{ gateway Updater }

func NewUpdateProfileAction(g Updater) *UpdateProfileAction {
	return &UpdateProfileAction{gateway: g}
}

func (a *UpdateProfileAction) Execute(ctx context.Context, id string, payload UpdatePayload) (Profile, error) {
	return a.gateway.Update(ctx, id, payload)
}

type Views interface {
	GetProfileSuccess(profile Profile)
	GetProfileError(err error)
	UpdateProfileSuccess(profile Profile)
	UpdateProfileError(err error)
}

type Presenter struct {
	get    *GetProfileAction
	update *UpdateProfileAction
	views  Views
}

func NewPresenter(get *GetProfileAction, update *UpdateProfileAction, views Views) *Presenter {
	return &Presenter{get: get, update: update, views: views}
}

func (p *Presenter) GetProfile(ctx context.Context, id string) {
	profile, err := p.get.Execute(ctx, id)
	if err != nil {
		p.views.GetProfileError(err)
		return
	}
	p.views.GetProfileSuccess(profile)
}

func (p *Presenter) UpdateProfile(ctx context.Context, id string, payload UpdatePayload) {
	profile, err := p.update.Execute(ctx, id, payload)
	if err != nil {
		p.views.UpdateProfileError(err)
		return
	}
	p.views.UpdateProfileSuccess(profile)
}
