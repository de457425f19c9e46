package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type app struct {
	builder         *registry.Builder
	modules         contracts.AppRegistry
	info            Info
	appCtx          *appContext
	appCtxMu        sync.RWMutex
	isRunning       int32
	shutdownTimeout time.Duration
	handleSignals   bool
}

type Option func(*app)

func WithGracefulTimeout(timeout time.Duration) Option {
	return func(a *app) {
		a.shutdownTimeout = timeout
	}
}

func WithoutSignalHandler() Option {
	return func(a *app) {
		a.handleSignals = false
	}
}

func New(info Info, modules contracts.AppRegistry, opts ...Option) contracts.App {
	if modules == nil {
		modules = NewModuleRegistry()
	}

	a := &app{
		builder:         registry.NewBuilder(),
		modules:         modules,
		info:            info,
		shutdownTimeout: 10 * time.Second,
		handleSignals:   true,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *app) Register(module contracts.AppModule) error {
	return a.modules.Register(module)
}

func (a *app) context() *appContext {
	a.appCtxMu.RLock()
	defer a.appCtxMu.RUnlock()
	return a.appCtx
}

// Run registers every module into the registry builder, freezes the registry,
// starts modules in order and blocks until the application context is stopped.
func (a *app) Run() error {
	if !atomic.CompareAndSwapInt32(&a.isRunning, 0, 1) {
		return ErrAppRun.WithDetail("reason", "application is already running")
	}

	for _, module := range a.modules.All() {
		if err := module.Register(a.builder); err != nil {
			return ErrModuleRegister.
				WithDetail("module", module.Name()).
				WithCause(err)
		}
	}

	resolver, err := a.builder.Build()
	if err != nil {
		return ErrRegistryBuild.WithCause(err)
	}

	ctx := newAppContext(context.Background(), a.info, resolver, a.modules)
	a.appCtxMu.Lock()
	a.appCtx = ctx
	a.appCtxMu.Unlock()

	if a.handleSignals {
		go watchSignals(ctx)
	}

	started := 0
	for _, module := range a.modules.All() {
		if err := module.Start(ctx); err != nil {
			ctx.Stop()
			a.stopStarted(ctx, started)
			return ErrModuleStart.
				WithDetail("module", module.Name()).
				WithCause(err)
		}
		started++
	}

	<-ctx.Ctx().Done()

	return a.shutdown(ctx)
}

func (a *app) shutdown(ctx *appContext) error {
	if a.shutdownTimeout <= 0 {
		return a.modules.Shutdown(ctx)
	}

	timer := time.NewTimer(a.shutdownTimeout)
	defer timer.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.modules.Shutdown(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-timer.C:
		return ErrAppStop.WithDetail("reason", "graceful shutdown timed out after "+a.shutdownTimeout.String())
	}
}

func (a *app) stopStarted(ctx contracts.AppContext, count int) {
	modules := a.modules.All()
	for i := count - 1; i >= 0; i-- {
		_ = modules[i].Stop(ctx)
	}
}

func watchSignals(ctx contracts.AppContext) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		ctx.Stop()
	case <-ctx.Ctx().Done():
	}
}
