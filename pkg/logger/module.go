package logger

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
	return contracts.LoggerModuleName
}

// Register builds the logger from the log.* section when a config is
// registered; explicit options win over configured values.
func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(
		contracts.LoggerModuleName,
		func(c contracts.DIResolver) (any, error) {
			var opts []Option
			if c.Has(contracts.ConfigModuleName) {
				cfg, err := registry.Resolve[contracts.Config](c, contracts.ConfigModuleName)
				if err != nil {
					return nil, err
				}
				opts = append(opts, FromConfig(cfg)...)
			}
			return NewLogger(append(opts, m.opts...)...), nil
		},
	)
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func FromConfig(cfg contracts.Config) []Option {
	opts := []Option{
		WithLevel(ParseLevel(cfg.GetString("log.level", "info"))),
		WithRedactedKeys("authorization", "password", "token"),
	}
	if cfg.GetBool("log.json") {
		opts = append(opts, WithJSON())
	}
	if cfg.GetBool("log.source") {
		opts = append(opts, WithSource())
	}
	if cfg.GetBool("log.color", true) {
		opts = append(opts, WithColor())
	}
	return opts
}
