package environments

import (
	"flag"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "environments"
}

func (m *module) Register(container contracts.DIContainer) error {
	gatewayFor := func(c contracts.DIResolver) (*Gateway, error) {
		client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
		if err != nil {
			return nil, err
		}
		return NewGateway(client), nil
	}
	if err := container.Factory(GetEnvironmentActionKey, func(c contracts.DIResolver) (any, error) {
		g, err := gatewayFor(c)
		if err != nil {
			return nil, err
		}
		return NewGetEnvironmentAction(g), nil
	}); err != nil {
		return err
	}
	return container.Factory(UpdateEnvironmentActionKey, func(c contracts.DIResolver) (any, error) {
		g, err := gatewayFor(c)
		if err != nil {
			return nil, err
		}
		return NewUpdateEnvironmentAction(g), nil
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	get, err := registry.Resolve[*GetEnvironmentAction](ctx.Container(), GetEnvironmentActionKey)
	if err != nil {
		return nil, err
	}
	update, err := registry.Resolve[*UpdateEnvironmentAction](ctx.Container(), UpdateEnvironmentActionKey)
	if err != nil {
		return nil, err
	}
	info := func(name, summary string) cli.Info {
		return cli.Info{CommandName: name, Summary: summary, CommandGroup: contracts.BackofficeGroup}
	}
	return []contracts.CliCommand{
		&envCommand{Info: info("environments:get", "Show a server setting"), get: get, update: update},
		&envCommand{Info: info("environments:set", "Change a server setting"), get: get, update: update, write: true},
	}, nil
}

type envCommand struct {
	cli.Info
	get    *GetEnvironmentAction
	update *UpdateEnvironmentAction
	write  bool

	key   string
	value string
}

func (c *envCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&c.key, "key", SubscriptionPriceKey, "Setting name")
	if c.write {
		flags.StringVar(&c.value, "value", "", "New value")
	}
}

func (c *envCommand) Execute(ctx contracts.CliContext) error {
	view := &envView{View: cli.NewView(ctx.Output())}
	presenter := NewPresenter(c.get, c.update, view)
	if !c.write {
		presenter.GetEnvironment(ctx.Ctx().Ctx(), c.key)
		return view.Result()
	}
	if err := cli.RequireFlags("key", c.key, "value", c.value); err != nil {
		return err
	}
	presenter.UpdateEnvironment(ctx.Ctx().Ctx(), c.key, c.value)
	return view.Result()
}

type envView struct {
	*cli.View
}

func (v *envView) GetEnvironmentSuccess(env Environment) {
	v.Printf("%s=%s\n", env.Key, env.Value)
}

func (v *envView) UpdateEnvironmentSuccess(env Environment) {
	v.Printf("%s updated to %s\n", env.Key, env.Value)
}

func (v *envView) GetEnvironmentError(err error)    { v.Fail(err) }
func (v *envView) UpdateEnvironmentError(err error) { v.Fail(err) }
