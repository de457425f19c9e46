package navigation

import (
	"context"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const (
	LoginRoute = "/login"
	ErrorRoute = "/error"
)

// Requested is published whenever the client core asks the shell to move to
// another screen.
type Requested struct {
	From   string
	Path   string
	Reason string
}

type Navigator struct {
	bus    contracts.Bus
	logger contracts.Logger

	mu      sync.RWMutex
	current string
}

var _ contracts.Navigator = (*Navigator)(nil)

func New(bus contracts.Bus, logger contracts.Logger) *Navigator {
	return &Navigator{bus: bus, logger: logger, current: "/"}
}

func (n *Navigator) Navigate(ctx context.Context, path string, reason string) error {
	n.mu.Lock()
	from := n.current
	n.current = path
	n.mu.Unlock()

	if n.logger != nil {
		n.logger.Debug("navigation requested", "from", from, "to", path, "reason", reason)
	}
	if n.bus == nil {
		return nil
	}
	return n.bus.Publish(ctx, Requested{From: from, Path: path, Reason: reason})
}

func (n *Navigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}
