package adminusers

import (
	"flag"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/modules/dashboard"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "adminUsers"
}

func (m *module) Register(container contracts.DIContainer) error {
	factories := map[string]func(*Gateway) any{
		GetAdminUsersActionKey:   func(g *Gateway) any { return NewGetAdminUsersAction(g) },
		EditAdminUserActionKey:   func(g *Gateway) any { return NewEditAdminUserAction(g) },
		CreateAdminUserActionKey: func(g *Gateway) any { return NewCreateAdminUserAction(g) },
		DeleteAdminUserActionKey: func(g *Gateway) any { return NewDeleteAdminUserAction(g) },
		GetAdminMetricsActionKey: func(g *Gateway) any { return dashboard.NewGetUserMetricsAction(g) },
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
		metrics *dashboard.GetUserMetricsAction
		err     error
	)
	if actions.Get, err = registry.Resolve[*GetAdminUsersAction](c, GetAdminUsersActionKey); err != nil {
		return nil, err
	}
	if actions.Edit, err = registry.Resolve[*EditAdminUserAction](c, EditAdminUserActionKey); err != nil {
		return nil, err
	}
	if actions.Create, err = registry.Resolve[*CreateAdminUserAction](c, CreateAdminUserActionKey); err != nil {
		return nil, err
	}
	if actions.Delete, err = registry.Resolve[*DeleteAdminUserAction](c, DeleteAdminUserActionKey); err != nil {
		return nil, err
	}
	if metrics, err = registry.Resolve[*dashboard.GetUserMetricsAction](c, GetAdminMetricsActionKey); err != nil {
		return nil, err
	}

	info := func(name, summary string) cli.Info {
		return cli.Info{CommandName: name, Summary: summary, CommandGroup: contracts.BackofficeGroup}
	}
	return []contracts.CliCommand{
		&listCommand{Info: info("admin-users:list", "List back office accounts"), actions: actions},
		&createCommand{Info: info("admin-users:create", "Create a back office account"), actions: actions},
		&editCommand{Info: info("admin-users:edit", "Edit a back office account"), actions: actions},
		&deleteCommand{Info: info("admin-users:delete", "Delete a back office account"), actions: actions},
		&metricsCommand{Info: info("admin-users:metrics", "Show user metrics"), action: metrics},
	}, nil
}

type inputFlags struct {
	email  cli.StringFlag
	name   cli.StringFlag
	role   cli.StringFlag
	status cli.BoolFlag
}

func (f *inputFlags) configure(flags *flag.FlagSet) {
	flags.Var(&f.email, "email", "Account email")
	flags.Var(&f.name, "name", "Display name")
	flags.Var(&f.role, "role", "admin or editor")
	flags.Var(&f.status, "active", "Whether the account may sign in")
}

func (f *inputFlags) input() Input {
	return Input{Email: f.email.Ptr(), Name: f.name.Ptr(), Role: f.role.Ptr(), Status: f.status.Ptr()}
}

type listCommand struct {
	cli.Info
	actions Actions
}

func (c *listCommand) Configure(_ *flag.FlagSet) {}

func (c *listCommand) Execute(ctx contracts.CliContext) error {
	view := newView(ctx)
	NewPresenter(c.actions, view).GetAdminUsers(ctx.Ctx().Ctx())
	return view.Result()
}

type createCommand struct {
	cli.Info
	actions Actions
	flags   inputFlags
}

func (c *createCommand) Configure(flags *flag.FlagSet) { c.flags.configure(flags) }

func (c *createCommand) Execute(ctx contracts.CliContext) error {
	in := c.flags.input()
	if err := cli.RequireFlags("email", c.flags.email.String(), "name", c.flags.name.String(), "role", c.flags.role.String()); err != nil {
		return err
	}
	password, err := cli.NewPrompter(ctx).Require("", "Password", true)
	if err != nil {
		return err
	}
	in.Password = &password

	view := newView(ctx)
	NewPresenter(c.actions, view).CreateAdminUser(ctx.Ctx().Ctx(), in)
	return view.Result()
}

type editCommand struct {
	cli.Info
	actions Actions
	id      string
	flags   inputFlags
}

func (c *editCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.id, "id", "", "Account id")
	c.flags.configure(flags)
}

func (c *editCommand) Execute(ctx contracts.CliContext) error {
	if err := cli.RequireFlags("id", c.id); err != nil {
		return err
	}
	view := newView(ctx)
	NewPresenter(c.actions, view).UpdateAdminUser(ctx.Ctx().Ctx(), c.id, c.flags.input())
	return view.Result()
}

type deleteCommand struct {
	cli.Info
	actions Actions
	id      string
}

func (c *deleteCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.id, "id", "", "Account id")
}

func (c *deleteCommand) Execute(ctx contracts.CliContext) error {
	if err := cli.RequireFlags("id", c.id); err != nil {
		return err
	}
	view := newView(ctx)
	NewPresenter(c.actions, view).DeleteAdminUser(ctx.Ctx().Ctx(), c.id)
	return view.Result()
}

type metricsCommand struct {
	cli.Info
	action *dashboard.GetUserMetricsAction
}

func (c *metricsCommand) Configure(_ *flag.FlagSet) {}

func (c *metricsCommand) Execute(ctx contracts.CliContext) error {
	view := newView(ctx)
	dashboard.NewPresenter(c.action, view).GetMetrics(ctx.Ctx().Ctx())
	return view.Result()
}
