package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/app"
	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/database"
	"github.com/shuldan/underc0de-admin/pkg/events"
	"github.com/shuldan/underc0de-admin/pkg/httpclient"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/metrics"
	"github.com/shuldan/underc0de-admin/pkg/modules/adminusers"
	"github.com/shuldan/underc0de-admin/pkg/modules/appusers"
	"github.com/shuldan/underc0de-admin/pkg/modules/commerces"
	"github.com/shuldan/underc0de-admin/pkg/modules/dashboard"
	"github.com/shuldan/underc0de-admin/pkg/modules/environments"
	"github.com/shuldan/underc0de-admin/pkg/modules/login"
	"github.com/shuldan/underc0de-admin/pkg/modules/notifications"
	"github.com/shuldan/underc0de-admin/pkg/modules/profile"
	"github.com/shuldan/underc0de-admin/pkg/navigation"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

type Bootstrap struct {
	appName         string
	appVersion      string
	appEnvironment  string
	modules         []contracts.AppModule
	gracefulTimeout time.Duration
	appOptions      []app.Option
}

// New starts a module list with the config module. Modules are started in
// the order they are added, so the cli module goes last.
func New(appName string, appVersion string, envPrefix string, configPaths ...string) *Bootstrap {
	appEnvironment := os.Getenv("APP_ENVIRONMENT")
	if appEnvironment == "" {
		appEnvironment = "development"
	}

	return &Bootstrap{
		appName:         appName,
		appVersion:      appVersion,
		appEnvironment:  appEnvironment,
		modules:         []contracts.AppModule{config.NewModule(envPrefix, configPaths...)},
		gracefulTimeout: 30 * time.Second,
	}
}

func (b *Bootstrap) WithGracefulTimeout(timeout time.Duration) *Bootstrap {
	b.gracefulTimeout = timeout
	return b
}

func (b *Bootstrap) WithAppOptions(opts ...app.Option) *Bootstrap {
	b.appOptions = append(b.appOptions, opts...)
	return b
}

func (b *Bootstrap) WithLogger(opts ...logger.Option) *Bootstrap {
	return b.with(logger.NewModule(opts...))
}

func (b *Bootstrap) WithEventBus() *Bootstrap {
	return b.with(events.NewModule())
}

func (b *Bootstrap) WithNavigation(notices io.Writer) *Bootstrap {
	return b.with(navigation.NewModule(notices))
}

func (b *Bootstrap) WithMetrics() *Bootstrap {
	return b.with(metrics.NewModule())
}

func (b *Bootstrap) WithDatabase() *Bootstrap {
	return b.with(database.NewModule())
}

func (b *Bootstrap) WithSession() *Bootstrap {
	return b.with(session.NewModule())
}

func (b *Bootstrap) WithHTTPClient(opts ...httpclient.Option) *Bootstrap {
	return b.with(httpclient.NewModule(opts...))
}

// WithBackoffice adds the domain modules: their gateways, actions and
// commands.
func (b *Bootstrap) WithBackoffice() *Bootstrap {
	return b.with(
		login.NewModule(),
		dashboard.NewModule(),
		adminusers.NewModule(),
		appusers.NewModule(),
		commerces.NewModule(),
		notifications.NewModule(),
		environments.NewModule(),
		profile.NewModule(),
	)
}

func (b *Bootstrap) WithCli(args []string, input io.Reader, output io.Writer) *Bootstrap {
	return b.with(cli.NewModule(args, input, output))
}

func (b *Bootstrap) with(modules ...contracts.AppModule) *Bootstrap {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *Bootstrap) CreateApp() (contracts.App, error) {
	a := app.New(
		app.Info{
			AppName:     b.appName,
			Version:     b.appVersion,
			Environment: b.appEnvironment,
		},
		app.NewModuleRegistry(),
		append([]app.Option{app.WithGracefulTimeout(b.gracefulTimeout)}, b.appOptions...)...,
	)

	for _, module := range b.modules {
		if err := a.Register(module); err != nil {
			return nil, err
		}
	}

	return a, nil
}
