package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// Exporter serves the registry on /metrics while long-running commands such
// as session:watch are active.
type Exporter struct {
	addr     string
	gatherer prometheus.Gatherer
	logger   contracts.Logger

	mu     sync.Mutex
	server *http.Server
}

func NewExporter(addr string, gatherer prometheus.Gatherer, logger contracts.Logger) *Exporter {
	return &Exporter{addr: addr, gatherer: gatherer, logger: logger}
}

func (e *Exporter) Start(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.server != nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.gatherer, promhttp.HandlerOpts{}))

	listener, err := net.Listen("tcp", e.addr)
	if err != nil {
		return ErrExporterStart.WithDetail("addr", e.addr).WithCause(err)
	}
	e.addr = listener.Addr().String()
	e.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	server := e.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics exporter failed", "error", err)
		}
	}()

	e.logger.Info("metrics exporter started", "addr", e.addr)
	return nil
}

// Addr is the bound address, useful when configured with port 0.
func (e *Exporter) Addr() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addr
}

func (e *Exporter) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.server == nil {
		return nil
	}
	if err := e.server.Shutdown(ctx); err != nil {
		return ErrExporterStop.WithCause(err)
	}
	e.server = nil
	e.logger.Info("metrics exporter stopped")
	return nil
}
