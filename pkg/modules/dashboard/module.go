package dashboard

import (
	"flag"
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return "dashboard"
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(GetUserMetricsActionKey, func(c contracts.DIResolver) (any, error) {
		client, err := registry.Resolve[contracts.HTTPClient](c, contracts.HTTPClientModuleName)
		if err != nil {
			return nil, err
		}
		return NewGetUserMetricsAction(NewGateway(client)), nil
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	action, err := registry.Resolve[*GetUserMetricsAction](ctx.Container(), GetUserMetricsActionKey)
	if err != nil {
		return nil, err
	}
	return []contracts.CliCommand{&metricsCommand{action: action}}, nil
}

type metricsCommand struct {
	action *GetUserMetricsAction
}

func (c *metricsCommand) Name() string                          { return "dashboard" }
func (c *metricsCommand) Description() string                   { return "Show platform metrics" }
func (c *metricsCommand) Group() string                         { return contracts.BackofficeGroup }
func (c *metricsCommand) Configure(_ *flag.FlagSet)             {}
func (c *metricsCommand) Validate(_ contracts.CliContext) error { return nil }

func (c *metricsCommand) Execute(ctx contracts.CliContext) error {
	view := &metricsView{View: cli.NewView(ctx.Output())}
	NewPresenter(c.action, view).GetMetrics(ctx.Ctx().Ctx())
	return view.Result()
}

type metricsView struct {
	*cli.View
}

func (v *metricsView) GetMetrics(m Metrics) {
	v.Table([]string{"METRIC", "VALUE"}, MetricRows(m))
}

func (v *metricsView) GetMetricsError(err error) {
	v.Fail(err)
}

// MetricRows lays out m for a two-column table.
func MetricRows(m Metrics) [][]string {
	return [][]string{
		{"Usuarios", strconv.FormatInt(m.Users, 10)},
		{"Comercios", strconv.FormatInt(m.Merchants, 10)},
		{"Notificaciones", strconv.FormatInt(m.Notifications, 10)},
		{"Suscripciones", strconv.FormatInt(m.Subscriptions, 10)},
	}
}
