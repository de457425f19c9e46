package login

import (
	"context"
	"flag"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "login"
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(LoginActionKey, func(c contracts.DIResolver) (any, error) {
		client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
		if err != nil {
			return nil, err
		}
		return NewLoginAction(NewGateway(client)), nil
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	action, err := registry.Resolve[*LoginAction](ctx.Container(), LoginActionKey)
	if err != nil {
		return nil, err
	}
	manager, err := registry.Resolve[*session.Manager](ctx.Container(), contracts.SessionModuleName)
	if err != nil {
		return nil, err
	}
	return []contracts.CliCommand{&loginCommand{action: action, manager: manager}}, nil
}

type loginCommand struct {
	action  *LoginAction
	manager *session.Manager
	email   string
}

func (c *loginCommand) Name() string        { return "login" }
func (c *loginCommand) Description() string { return "Sign in to the back office" }
func (c *loginCommand) Group() string       { return contracts.SessionCliGroup }

func (c *loginCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.email, "email", "", "Account email")
}

func (c *loginCommand) Validate(_ contracts.CliContext) error { return nil }

func (c *loginCommand) Execute(ctx contracts.CliContext) error {
	prompt := cli.NewPrompter(ctx)
	email, err := prompt.Require(c.email, "Email", false)
	if err != nil {
		return err
	}
	password, err := prompt.Require("", "Password", true)
	if err != nil {
		return err
	}

	view := &loginView{View: cli.NewView(ctx.Output()), ctx: ctx.Ctx().Ctx(), manager: c.manager}
	NewPresenter(c.action, view).Login(ctx.Ctx().Ctx(), email, password)
	return view.Result()
}

type loginView struct {
	*cli.View
	ctx     context.Context
	manager *session.Manager
}

func (v *loginView) OnLoginSuccess(result Result) {
	if result.Token == "" {
		v.Fail(ErrEmptyToken)
		return
	}
	if err := v.manager.Login(v.ctx, result.Token, result.User); err != nil {
		v.Fail(err)
		return
	}
	v.Printf("Welcome, %s (%s)\n", result.User.Name, result.User.Role)
}

func (v *loginView) OnLoginError(err error) {
	v.Fail(err)
}
