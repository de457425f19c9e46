package notifications

import (
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
	return "notifications"
}

func (m *module) Register(container contracts.DIContainer) error {
	factories := map[string]func(*Gateway) any{
		GetNotificationActionKey:    func(g *Gateway) any { return NewGetNotificationAction(g) },
		CreateNotificationActionKey: func(g *Gateway) any { return NewCreateNotificationAction(g) },
		UpdateNotificationActionKey: func(g *Gateway) any { return NewUpdateNotificationAction(g) },
		DeleteNotificationActionKey: func(g *Gateway) any { return NewDeleteNotificationAction(g) },
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
		manager *session.Manager
		err     error
	)
	if actions.Get, err = registry.Resolve[*GetNotificationAction](c, GetNotificationActionKey); err != nil {
		return nil, err
	}
	if actions.Create, err = registry.Resolve[*CreateNotificationAction](c, CreateNotificationActionKey); err != nil {
		return nil, err
	}
	if actions.Update, err = registry.Resolve[*UpdateNotificationAction](c, UpdateNotificationActionKey); err != nil {
		return nil, err
	}
	if actions.Delete, err = registry.Resolve[*DeleteNotificationAction](c, DeleteNotificationActionKey); err != nil {
		return nil, err
	}
	if manager, err = registry.Resolve[*session.Manager](c, contracts.SessionModuleName); err != nil {
		return nil, err
	}

	info := func(name, summary string) cli.Info {
		return cli.Info{CommandName: name, Summary: summary, CommandGroup: contracts.BackofficeGroup}
	}
	return []contracts.CliCommand{
		&listCommand{Info: info("notifications:list", "List push notifications"), actions: actions},
		&saveCommand{Info: info("notifications:create", "Schedule a push notification"), actions: actions, author: manager},
		&saveCommand{Info: info("notifications:update", "Update a push notification"), actions: actions, author: manager, update: true},
		&deleteCommand{Info: info("notifications:delete", "Delete a push notification"), actions: actions},
	}, nil
}

type listCommand struct {
	cli.Info
	actions Actions
}

func (c *listCommand) Configure(_ *flag.FlagSet) {}

func (c *listCommand) Execute(ctx contracts.CliContext) error {
	view := newView(ctx)
	NewPresenter(c.actions, view).GetNotifications(ctx.Ctx().Ctx())
	return view.Result()
}

type currentUser interface {
	User() (session.User, bool)
}

type saveCommand struct {
	cli.Info
	actions Actions
	author  currentUser
	update  bool

	id string
	in Input
}

func (c *saveCommand) Configure(flags *flag.FlagSet) {
	if c.update {
		flags.StringVar(&c.id, "id", "", "Notification id")
	}
	flags.StringVar(&c.in.Title, "title", "", "Title")
	flags.StringVar(&c.in.Message, "message", "", "Body text")
	flags.StringVar(&c.in.Audience, "audience", "", "todos, usersPro or normalUsers")
	flags.StringVar(&c.in.ScheduledAt, "at", "", "Delivery time, e.g. 2024-06-01T09:00:00Z")
}

func (c *saveCommand) Validate(_ contracts.CliContext) error {
	if _, ok := c.author.User(); !ok {
		return ErrNoAuthor
	}
	return nil
}

func (c *saveCommand) Execute(ctx contracts.CliContext) error {
	if c.update {
		if err := cli.RequireFlags("id", c.id); err != nil {
			return err
		}
	} else if err := cli.RequireFlags("title", c.in.Title, "message", c.in.Message, "audience", c.in.Audience); err != nil {
		return err
	}

	in := c.in
	if user, ok := c.author.User(); ok {
		in.Author = user.ID
	}

	view := newView(ctx)
	presenter := NewPresenter(c.actions, view)
	if c.update {
		presenter.UpdateNotification(ctx.Ctx().Ctx(), c.id, in)
	} else {
		presenter.CreateNotification(ctx.Ctx().Ctx(), in)
	}
	return view.Result()
}

type deleteCommand struct {
	cli.Info
	actions Actions
	id      string
}

func (c *deleteCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.id, "id", "", "Notification id")
}

func (c *deleteCommand) Execute(ctx contracts.CliContext) error {
	if err := cli.RequireFlags("id", c.id); err != nil {
		return err
	}
	view := newView(ctx)
	NewPresenter(c.actions, view).DeleteNotification(ctx.Ctx().Ctx(), c.id)
	return view.Result()
}
