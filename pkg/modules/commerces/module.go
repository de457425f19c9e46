package commerces

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "merchants"
}

func (m *module) Register(container contracts.DIContainer) error {
	factories := map[string]func(*Gateway) any{
		GetCommerceActionKey:    func(g *Gateway) any { return NewGetCommerceAction(g) },
		CreateCommerceActionKey: func(g *Gateway) any { return NewCreateCommerceAction(g) },
		UpdateCommerceActionKey: func(g *Gateway) any { return NewUpdateCommerceAction(g) },
		DeleteCommerceActionKey: func(g *Gateway) any { return NewDeleteCommerceAction(g) },
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
	if actions.Get, err = registry.Resolve[*GetCommerceAction](c, GetCommerceActionKey); err != nil {
		return nil, err
	}
	if actions.Create, err = registry.Resolve[*CreateCommerceAction](c, CreateCommerceActionKey); err != nil {
		return nil, err
	}
	if actions.Update, err = registry.Resolve[*UpdateCommerceAction](c, UpdateCommerceActionKey); err != nil {
		return nil, err
	}
	if actions.Delete, err = registry.Resolve[*DeleteCommerceAction](c, DeleteCommerceActionKey); err != nil {
		return nil, err
	}

	info := func(name, summary string) cli.Info {
		return cli.Info{CommandName: name, Summary: summary, CommandGroup: contracts.BackofficeGroup}
	}
	return []contracts.CliCommand{
		&listCommand{Info: info("commerces:list", "List merchants"), actions: actions},
		&saveCommand{Info: info("commerces:create", "Create a merchant"), actions: actions},
		&saveCommand{Info: info("commerces:update", "Update a merchant"), actions: actions, update: true},
		&deleteCommand{Info: info("commerces:delete", "Delete a merchant"), actions: actions},
	}, nil
}

type listCommand struct {
	cli.Info
	actions Actions
}

func (c *listCommand) Configure(_ *flag.FlagSet) {}

func (c *listCommand) Execute(ctx contracts.CliContext) error {
	view := newView(ctx)
	NewPresenter(c.actions, view).GetCommerces(ctx.Ctx().Ctx())
	return view.Result()
}

type saveCommand struct {
	cli.Info
	actions Actions
	update  bool

	id          string
	in          Input
	status      cli.BoolFlag
	proDiscount cli.FloatFlag
	discount    cli.FloatFlag
	logo        string
}

func (c *saveCommand) Configure(flags *flag.FlagSet) {
	if c.update {
		flags.StringVar(&c.id, "id", "", "Merchant id")
		flags.StringVar(&c.in.URL, "url", "", "Web page")
		flags.StringVar(&c.in.Detail, "detail", "", "Description shown in the app")
	}
	flags.StringVar(&c.in.Name, "name", "", "Merchant name")
	flags.StringVar(&c.in.Category, "category", "", "Category")
	flags.StringVar(&c.in.Address, "address", "", "Street address")
	flags.StringVar(&c.in.Phone, "phone", "", "Phone number")
	flags.StringVar(&c.in.Email, "email", "", "Contact email")
	flags.Var(&c.status, "active", "Whether the merchant is listed")
	flags.Var(&c.proDiscount, "pro-discount", "Discount for pro users")
	flags.Var(&c.discount, "discount", "Discount for regular users")
	flags.StringVar(&c.logo, "logo", "", "Path of a logo image to upload")
}

func (c *saveCommand) Execute(ctx contracts.CliContext) error {
	if c.update {
		if err := cli.RequireFlags("id", c.id); err != nil {
			return err
		}
	} else if err := cli.RequireFlags("name", c.in.Name, "address", c.in.Address); err != nil {
		return err
	}

	in := c.in
	in.Status = c.status.Ptr()
	in.UsersProDiscount, _ = c.proDiscount.Value()
	in.UsersDiscount, _ = c.discount.Value()
	if c.logo != "" {
		content, err := os.ReadFile(c.logo)
		if err != nil {
			return ErrLogoRead.WithDetail("path", c.logo).WithCause(err)
		}
		in.Logo = &Logo{Filename: filepath.Base(c.logo), Content: content}
	}

	view := newView(ctx)
	presenter := NewPresenter(c.actions, view)
	if c.update {
		presenter.UpdateCommerce(ctx.Ctx().Ctx(), c.id, in)
	} else {
		presenter.CreateCommerce(ctx.Ctx().Ctx(), in)
	}
	return view.Result()
}

type deleteCommand struct {
	cli.Info
	actions Actions
	id      string
}

func (c *deleteCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.id, "id", "", "Merchant id")
}

func (c *deleteCommand) Execute(ctx contracts.CliContext) error {
	if err := cli.RequireFlags("id", c.id); err != nil {
		return err
	}
	view := newView(ctx)
	NewPresenter(c.actions, view).DeleteCommerce(ctx.Ctx().Ctx(), c.id)
	return view.Result()
}
