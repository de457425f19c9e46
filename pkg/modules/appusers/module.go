package appusers

import (
	"flag"
	"slices"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "appUsers"
}

func (m *module) Register(container contracts.DIContainer) error {
	factories := map[string]func(*Gateway) any{
		GetAppUsersActionKey:   func(g *Gateway) any { return NewGetAppUsersAction(g) },
		EditAppUserActionKey:   func(g *Gateway) any { return NewEditAppUserAction(g) },
		CreateAppUserActionKey: func(g *Gateway) any { return NewCreateAppUserAction(g) },
		DeleteAppUserActionKey: func(g *Gateway) any { return NewDeleteAppUserAction(g) },
	}
	for key, build := range factories {
		if err := container.Factory(key, func(c contracts.DIResolver) (any, error) {
			client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
			if err != nil {
				return nil, err
			}
			return build(NewGateway(client)), nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	c := ctx.Container()
	var (
		actions Actions
		err     error
	)
	if actions.Get, err = registry.Resolve[*GetAppUsersAction](c, GetAppUsersActionKey); err != nil {
		return nil, err
	}
	if actions.Edit, err = registry.Resolve[*EditAppUserAction](c, EditAppUserActionKey); err != nil {
		return nil, err
	}
	if actions.Create, err = registry.Resolve[*CreateAppUserAction](c, CreateAppUserActionKey); err != nil {
		return nil, err
	}
	if actions.Delete, err = registry.Resolve[*DeleteAppUserAction](c, DeleteAppUserActionKey); err != nil {
		return nil, err
	}

	info := func(name, summary string) cli.Info {
		return cli.Info{CommandName: name, Summary: summary, CommandGroup: contracts.BackofficeGroup}
	}
	return []contracts.CliCommand{
		&listCommand{Info: info("users:list", "List app users"), actions: actions},
		&saveCommand{Info: info("users:create", "Create an app user"), actions: actions},
		&saveCommand{Info: info("users:edit", "Edit an app user"), actions: actions, edit: true},
		&deleteCommand{Info: info("users:delete", "Delete an app user"), actions: actions},
	}, nil
}

type listCommand struct {
	cli.Info
	actions Actions
}

func (c *listCommand) Configure(_ *flag.FlagSet) {}

func (c *listCommand) Execute(ctx contracts.CliContext) error {
	view := newView(ctx)
	NewPresenter(c.actions, view).GetAppUsers(ctx.Ctx().Ctx())
	return view.Result()
}

// saveCommand creates a user, or edits the one named by -id when edit is set.
type saveCommand struct {
	cli.Info
	actions Actions
	edit    bool

	id           string
	email        cli.StringFlag
	name         cli.StringFlag
	phone        cli.StringFlag
	subscription cli.StringFlag
	status       cli.BoolFlag
}

func (c *saveCommand) Configure(flags *flag.FlagSet) {
	if c.edit {
		flags.StringVar(&c.id, "id", "", "User id")
	}
	flags.Var(&c.email, "email", "Email")
	flags.Var(&c.name, "name", "Full name")
	flags.Var(&c.phone, "phone", "Phone number")
	flags.Var(&c.subscription, "subscription", "active, trial, expired, cancelled or none")
	flags.Var(&c.status, "active", "Whether the user may sign in")
}

// Validate catches a mistyped -subscription before anything is sent.
func (c *saveCommand) Validate(contracts.CliContext) error {
	if s := c.subscription.Ptr(); s != nil && !slices.Contains(subscriptions, *s) {
		return ErrInvalidSubscription.WithDetail("subscription", *s)
	}
	return nil
}

func (c *saveCommand) Execute(ctx contracts.CliContext) error {
	in := Input{
		Email:        c.email.Ptr(),
		Name:         c.name.Ptr(),
		Phone:        c.phone.Ptr(),
		Subscription: c.subscription.Ptr(),
		Status:       c.status.Ptr(),
	}
	view := newView(ctx)
	presenter := NewPresenter(c.actions, view)

	if c.edit {
		if err := cli.RequireFlags("id", c.id); err != nil {
			return err
		}
		presenter.UpdateAppUser(ctx.Ctx().Ctx(), c.id, in)
		return view.Result()
	}

	if err := cli.RequireFlags("email", c.email.String(), "name", c.name.String()); err != nil {
		return err
	}
	if in.Subscription == nil {
		none := SubscriptionNone
		in.Subscription = &none
	}
	presenter.CreateAppUser(ctx.Ctx().Ctx(), in)
	return view.Result()
}

type deleteCommand struct {
	cli.Info
	actions Actions
	id      string
}

func (c *deleteCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.id, "id", "", "User id")
}

func (c *deleteCommand) Execute(ctx contracts.CliContext) error {
	if err := cli.RequireFlags("id", c.id); err != nil {
		return err
	}
	view := newView(ctx)
	NewPresenter(c.actions, view).DeleteAppUser(ctx.Ctx().Ctx(), c.id)
	return view.Result()
}
