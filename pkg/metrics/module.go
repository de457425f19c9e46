package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

const stopTimeout = 5 * time.Second

type module struct {
	exporter *Exporter
}

// NewModule registers a Prometheus registry under "metrics". Collectors of
// other modules register against it; metrics.addr serves it over HTTP and
// metrics.textfile receives a snapshot on shutdown.
func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return contracts.MetricsModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.MetricsModuleName, func(contracts.DIResolver) (any, error) {
		return NewRegistry()
	})
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for name, c := range map[string]prometheus.Collector{
		"go":      collectors.NewGoCollector(),
		"process": collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, ErrRegisterFailed.WithDetail("name", name).WithCause(err)
		}
	}
	return reg, nil
}

func (m *module) Start(ctx contracts.AppContext) error {
	settings, err := registry.Resolve[*config.Settings](ctx.Container(), contracts.SettingsModuleName)
	if err != nil {
		return err
	}
	if settings.Metrics.Addr == "" {
		return nil
	}

	reg, err := registry.Resolve[*prometheus.Registry](ctx.Container(), contracts.MetricsModuleName)
	if err != nil {
		return err
	}
	logger, err := registry.Resolve[contracts.Logger](ctx.Container(), contracts.LoggerModuleName)
	if err != nil {
		return err
	}

	m.exporter = NewExporter(settings.Metrics.Addr, reg, logger.With("module", contracts.MetricsModuleName))
	return m.exporter.Start(ctx.Ctx())
}

func (m *module) Stop(ctx contracts.AppContext) error {
	if m.exporter != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := m.exporter.Stop(stopCtx); err != nil {
			return err
		}
	}

	settings, err := registry.Resolve[*config.Settings](ctx.Container(), contracts.SettingsModuleName)
	if err != nil {
		return err
	}
	if settings.Metrics.Textfile == "" {
		return nil
	}
	reg, err := registry.Resolve[*prometheus.Registry](ctx.Container(), contracts.MetricsModuleName)
	if err != nil {
		return err
	}
	return WriteTextfile(settings.Metrics.Textfile, reg)
}

// WriteTextfile writes a snapshot in the text exposition format, replacing
// path atomically.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return ErrTextfileWrite.WithDetail("path", path).WithCause(err)
	}
	return nil
}
