package navigation

import (
	"bytes"
	"context"
	"testing"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/events"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

func TestNavigator_PublishesRequests(t *testing.T) {
	bus := events.New()
	var got []Requested
	_ = bus.Subscribe((*Requested)(nil), func(_ context.Context, e Requested) error {
		got = append(got, e)
		return nil
	})

	n := New(bus, nil)
	if err := n.Navigate(context.Background(), "/dashboard", ""); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if err := n.Navigate(context.Background(), LoginRoute, "session expired"); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}

	if n.Current() != LoginRoute {
		t.Errorf("unexpected current route %q", n.Current())
	}
	if len(got) != 2 || got[1].From != "/dashboard" || got[1].Reason != "session expired" {
		t.Errorf("unexpected events %+v", got)
	}
}

func TestModule_AnnouncesReasons(t *testing.T) {
	notices := &bytes.Buffer{}

	b := registry.NewBuilder()
	_ = b.Instance(contracts.EventBusModuleName, events.New())
	_ = b.Instance(contracts.LoggerModuleName, logger.NewLogger(logger.WithWriter(&bytes.Buffer{})))
	_ = NewModule(notices).Register(b)

	r, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	nav := registry.MustResolve[*Navigator](r, contracts.NavigatorModuleName)
	_ = nav.Navigate(context.Background(), ErrorRoute, "")
	_ = nav.Navigate(context.Background(), LoginRoute, "Sesión cerrada")

	if notices.String() != "Sesión cerrada\n" {
		t.Errorf("unexpected notices %q", notices.String())
	}
}
