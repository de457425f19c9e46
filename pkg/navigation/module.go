package navigation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	notices io.Writer
}

// NewModule registers the navigator. Navigation reasons are echoed to notices
// so a terminal user sees why the session ended.
func NewModule(notices io.Writer) contracts.AppModule {
	if notices == nil {
		notices = os.Stderr
	}
	return &module{notices: notices}
}

func (m *module) Name() string {
	return contracts.NavigatorModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.NavigatorModuleName, func(c contracts.DIResolver) (any, error) {
		bus, err := registry.Resolve[contracts.Bus](c, contracts.EventBusModuleName)
		if err != nil {
			return nil, err
		}
		logger, err := registry.Resolve[contracts.Logger](c, contracts.LoggerModuleName)
		if err != nil {
			return nil, err
		}

		if err := bus.Subscribe((*Requested)(nil), m.announce); err != nil {
			return nil, err
		}
		return New(bus, logger), nil
	})
}

func (m *module) announce(_ context.Context, e Requested) error {
	if e.Reason == "" {
		return nil
	}
	_, err := fmt.Fprintln(m.notices, e.Reason)
	return err
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}
