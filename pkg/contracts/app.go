package contracts

import (
	"context"
	"time"
)

// DIContainer is the registration side of the dependency registry. It is only
// available while modules register, before the registry is finalized.
type DIContainer interface {
	Has(key string) bool
	Instance(key string, instance any) error
	Factory(key string, factory func(c DIResolver) (any, error)) error
}

// DIResolver is the read-only side of the dependency registry.
type DIResolver interface {
	Has(key string) bool
	Resolve(key string) (any, error)
}

type AppContext interface {
	Ctx() context.Context
	Container() DIResolver
	AppName() string
	Version() string
	Environment() string
	StartTime() time.Time
	StopTime() time.Time
	IsRunning() bool
	Stop()
	AppRegistry() AppRegistry
}

type AppModule interface {
	Name() string
	Register(container DIContainer) error
	Start(ctx AppContext) error
	Stop(ctx AppContext) error
}

type AppRegistry interface {
	Register(module AppModule) error
	All() []AppModule
	Shutdown(ctx AppContext) error
}

type App interface {
	Register(module AppModule) error
	Run() error
}
