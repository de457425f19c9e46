package profile

import (
	"context"
	"flag"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const minPasswordLength = 6

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "profile"
}

func (m *module) Register(container contracts.DIContainer) error {
	if err := container.Factory(GetProfileActionKey, func(c contracts.DIResolver) (any, error) {
		client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
		if err != nil {
			return nil, err
		}
		return NewGetProfileAction(NewGateway(client)), nil
	}); err != nil {
		return err
	}
	return container.Factory(UpdateProfileActionKey, func(c contracts.DIResolver) (any, error) {
		client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
		if err != nil {
			return nil, err
		}
		return NewUpdateProfileAction(NewGateway(client)), nil
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	c := ctx.Container()
	get, err := registry.Resolve[*GetProfileAction](c, GetProfileActionKey)
	if err != nil {
		return nil, err
	}
	update, err := registry.Resolve[*UpdateProfileAction](c, UpdateProfileActionKey)
	if err != nil {
		return nil, err
	}
	manager, err := registry.Resolve[*session.Manager](c, contracts.SessionModuleName)
	if err != nil {
		return nil, err
	}

	base := profileCommand{get: get, update: update, account: manager}
	show, edit := base, base
	show.Info = cli.Info{CommandName: "profile:show", Summary: "Show your account", CommandGroup: contracts.SessionCliGroup}
	edit.Info = cli.Info{CommandName: "profile:update", Summary: "Change your name, email or password", CommandGroup: contracts.SessionCliGroup}
	return []contracts.CliCommand{&showCommand{show}, &updateCommand{profileCommand: edit}}, nil
}

// account is the slice of the session manager the profile commands use.
type account interface {
	User() (session.User, bool)
	UpdateUser(ctx context.Context, patch session.UserPatch) (session.User, error)
}

type profileCommand struct {
	cli.Info
	get     *GetProfileAction
	update  *UpdateProfileAction
	account account
}

func (c *profileCommand) Validate(_ contracts.CliContext) error {
	if _, ok := c.account.User(); !ok {
		return session.ErrNotAuthenticated
	}
	return nil
}

func (c *profileCommand) view(ctx contracts.CliContext) *profileView {
	return &profileView{View: cli.NewView(ctx.Output()), ctx: ctx.Ctx().Ctx(), account: c.account}
}

type showCommand struct {
	profileCommand
}

func (c *showCommand) Configure(_ *flag.FlagSet) {}

func (c *showCommand) Execute(ctx contracts.CliContext) error {
	user, _ := c.account.User()
	view := c.view(ctx)
	NewPresenter(c.get, c.update, view).GetProfile(ctx.Ctx().Ctx(), user.ID)
	return view.Result()
}

type updateCommand struct {
	profileCommand
	name     cli.StringFlag
	email    cli.StringFlag
	password bool
}

func (c *updateCommand) Configure(flags *flag.FlagSet) {
	flags.Var(&c.name, "name", "New display name")
	flags.Var(&c.email, "email", "New email")
	flags.BoolVar(&c.password, "password", false, "Change the password (prompted)")
}

func (c *updateCommand) Execute(ctx contracts.CliContext) error {
	payload := UpdatePayload{Name: c.name.Ptr(), Email: c.email.Ptr()}
	if c.password {
		current, next, err := c.readPasswords(cli.NewPrompter(ctx))
		if err != nil {
			return err
		}
		payload.CurrentPassword, payload.NewPassword = &current, &next
	}
	if payload == (UpdatePayload{}) {
		return ErrNothingToUpdate
	}

	user, _ := c.account.User()
	view := c.view(ctx)
	view.passwordChange = c.password
	NewPresenter(c.get, c.update, view).UpdateProfile(ctx.Ctx().Ctx(), user.ID, payload)
	return view.Result()
}

func (c *updateCommand) readPasswords(prompt *cli.Prompter) (string, string, error) {
	current, err := prompt.Secret("Current password")
	if err != nil {
		return "", "", err
	}
	if current == "" {
		return "", "", ErrCurrentPasswordRequired
	}
	next, err := prompt.Secret("New password")
	if err != nil {
		return "", "", err
	}
	confirm, err := prompt.Secret("Confirm new password")
	if err != nil {
		return "", "", err
	}
	return current, next, checkNewPassword(next, confirm)
}

func checkNewPassword(next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(next)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

type profileView struct {
	*cli.View
	ctx            context.Context
	account        account
	passwordChange bool
}

func (v *profileView) GetProfileSuccess(p Profile) {
	v.Printf("%s <%s>\n", p.Name, p.Email)
	v.Printf("id:      %s\n", p.ID)
	v.Printf("role:    %s\n", p.Role)
	v.Printf("created: %s\n", p.CreatedAt)
	if p.UpdatedAt != "" {
		v.Printf("updated: %s\n", p.UpdatedAt)
	}
}

// UpdateProfileSuccess keeps the signed-in session in step with the account.
func (v *profileView) UpdateProfileSuccess(p Profile) {
	name, email, role := p.Name, p.Email, p.Role
	if _, err := v.account.UpdateUser(v.ctx, session.UserPatch{Name: &name, Email: &email, Role: &role}); err != nil {
		v.Fail(err)
		return
	}
	if v.passwordChange {
		v.Printf("Contraseña actualizada\n")
		return
	}
	v.Printf("Perfil actualizado\n")
}

func (v *profileView) GetProfileError(err error)    { v.Fail(err) }
func (v *profileView) UpdateProfileError(err error) { v.Fail(err) }
