package events

import (
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	opts []Option
}

func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.EventBusModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(
		contracts.EventBusModuleName,
		func(c contracts.DIResolver) (any, error) {
			var opts []Option
			if c.Has(contracts.ConfigModuleName) {
				cfg, err := registry.Resolve[contracts.Config](c, contracts.ConfigModuleName)
				if err != nil {
					return nil, err
				}
				if workers := cfg.GetInt("events.async_workers", 0); workers > 0 {
					opts = append(opts, WithAsyncMode(workers))
				}
			}
			opts = append(opts, m.opts...)
			if c.Has(contracts.LoggerModuleName) {
				logger, err := registry.Resolve[contracts.Logger](c, contracts.LoggerModuleName)
				if err != nil {
					return nil, err
				}
				opts = append([]Option{
					WithPanicHandler(NewLoggingPanicHandler(logger)),
					WithErrorHandler(NewLoggingErrorHandler(logger)),
				}, opts...)
			}
			return New(opts...), nil
		},
	)
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(ctx contracts.AppContext) error {
	b, err := registry.Resolve[contracts.Bus](ctx.Container(), contracts.EventBusModuleName)
	if err != nil {
		return err
	}
	return b.Close()
}
