package database

import (
	"time"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct{}

// NewModule registers a lazily connected *Database built from the database.*
// settings, and the migrate commands for every module that ships migrations.
func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return contracts.DatabaseModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.DatabaseModuleName, func(c contracts.DIResolver) (any, error) {
		settings, err := registry.Resolve[*config.Settings](c, contracts.SettingsModuleName)
		if err != nil {
			return nil, err
		}
		return New(settings.Database.Driver, settings.Database.DSN,
			WithPingTimeout(5*time.Second),
			WithRetry(3, time.Second),
			WithConnectionPool(settings.Database.MaxOpen, settings.Database.MaxIdle, 30*time.Minute),
		)
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(ctx contracts.AppContext) error {
	db, err := registry.Resolve[*Database](ctx.Container(), contracts.DatabaseModuleName)
	if err != nil {
		return err
	}
	return db.Close()
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	db, err := registry.Resolve[*Database](ctx.Container(), contracts.DatabaseModuleName)
	if err != nil {
		return nil, err
	}

	base := migrationCommand{db: db, migrations: CollectMigrations(ctx.AppRegistry())}
	return []contracts.CliCommand{
		&migrateCommand{migrationCommand: base},
		&rollbackCommand{migrationCommand: base},
		&statusCommand{migrationCommand: base},
	}, nil
}

// CollectMigrations gathers migrations from every registered module that
// implements contracts.MigrationsProvider.
func CollectMigrations(modules contracts.AppRegistry) []contracts.Migration {
	var migrations []contracts.Migration
	for _, mod := range modules.All() {
		if provider, ok := mod.(contracts.MigrationsProvider); ok {
			migrations = append(migrations, provider.Migrations()...)
		}
	}
	return migrations
}
