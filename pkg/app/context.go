package app

import (
	"context"
	"sync"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type Info struct {
	AppName     string
	Version     string
	Environment string
}

type appContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container contracts.DIResolver
	modules   contracts.AppRegistry
	info      Info
	startTime time.Time
	stopTime  time.Time
	mu        sync.RWMutex
	isRunning bool
}

func newAppContext(parent context.Context, info Info, container contracts.DIResolver, modules contracts.AppRegistry) *appContext {
	ctx, cancel := context.WithCancel(parent)
	return &appContext{
		ctx:       ctx,
		cancel:    cancel,
		container: container,
		modules:   modules,
		info:      info,
		startTime: time.Now(),
		isRunning: true,
	}
}

func (c *appContext) Ctx() context.Context { return c.ctx }

func (c *appContext) Container() contracts.DIResolver { return c.container }

func (c *appContext) AppRegistry() contracts.AppRegistry { return c.modules }

func (c *appContext) AppName() string { return c.info.AppName }

func (c *appContext) Version() string { return c.info.Version }

func (c *appContext) Environment() string { return c.info.Environment }

func (c *appContext) StartTime() time.Time { return c.startTime }

func (c *appContext) StopTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopTime
}

func (c *appContext) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isRunning
}

func (c *appContext) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		c.cancel()
		c.stopTime = time.Now()
		c.isRunning = false
	}
}
