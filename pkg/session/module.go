package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/database"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewModule registers the credential store under "sessionStore" and the
// Manager under "session". Start restores the persisted session and listens
// for changes made by other sessions until Stop.
func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return contracts.SessionModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	if err := container.Factory(contracts.SessionStoreName, newStore); err != nil {
		return err
	}

	return container.Factory(contracts.SessionModuleName, func(c contracts.DIResolver) (any, error) {
		store, err := registry.Resolve[contracts.KeyValueStore](c, contracts.SessionStoreName)
		if err != nil {
			return nil, err
		}
		navigator, err := registry.Resolve[contracts.Navigator](c, contracts.NavigatorModuleName)
		if err != nil {
			return nil, err
		}
		logger, err := registry.Resolve[contracts.Logger](c, contracts.LoggerModuleName)
		if err != nil {
			return nil, err
		}
		return NewManager(store, navigator, logger.With("module", contracts.SessionModuleName)), nil
	})
}

func newStore(c contracts.DIResolver) (any, error) {
	settings, err := registry.Resolve[*config.Settings](c, contracts.SettingsModuleName)
	if err != nil {
		return nil, err
	}
	s := settings.Session

	switch s.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(s.FilePath, s.PollInterval), nil
	case "redis":
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{s.Redis.Addr},
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		return NewRedisStore(client, s.Redis.Prefix, s.Redis.Stream), nil
	case "sql":
		db, err := registry.Resolve[*database.Database](c, contracts.DatabaseModuleName)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		conn, err := db.Connect(ctx)
		if err != nil {
			return nil, err
		}
		if err := database.NewMigrationRunner(conn).Run(ctx, Migrations()); err != nil {
			return nil, err
		}
		return NewSQLStore(conn, s.PollInterval), nil
	default:
		return nil, ErrUnknownDriver.WithDetail("driver", s.Driver)
	}
}

func (m *module) Migrations() []contracts.Migration {
	return Migrations()
}

func (m *module) Start(ctx contracts.AppContext) error {
	manager, err := registry.Resolve[*Manager](ctx.Container(), contracts.SessionModuleName)
	if err != nil {
		return err
	}
	if _, err := manager.Restore(ctx.Ctx()); err != nil {
		return err
	}

	listenCtx, cancel := context.WithCancel(ctx.Ctx())
	done := make(chan struct{})

	m.mu.Lock()
	m.cancel, m.done = cancel, done
	m.mu.Unlock()

	go func() {
		defer close(done)
		if err := manager.Listen(listenCtx); err != nil {
			manager.logger.Error("session listener stopped", "error", err)
		}
	}()
	return nil
}

func (m *module) Stop(ctx contracts.AppContext) error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	store, err := registry.Resolve[contracts.KeyValueStore](ctx.Container(), contracts.SessionStoreName)
	if err != nil {
		return err
	}
	return store.Close()
}

func (m *module) CliCommands(ctx contracts.AppContext) ([]contracts.CliCommand, error) {
	manager, err := registry.Resolve[*Manager](ctx.Container(), contracts.SessionModuleName)
	if err != nil {
		return nil, err
	}
	bus, err := registry.Resolve[contracts.Bus](ctx.Container(), contracts.EventBusModuleName)
	if err != nil {
		return nil, err
	}
	return []contracts.CliCommand{
		&logoutCommand{sessionCommand{manager: manager}},
		&whoamiCommand{sessionCommand{manager: manager}},
		&watchCommand{manager: manager, bus: bus},
	}, nil
}
