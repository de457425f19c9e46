package metrics

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type stubAppContext struct {
	contracts.AppContext
	container contracts.DIResolver
}

func (s *stubAppContext) Ctx() context.Context            { return context.Background() }
func (s *stubAppContext) Container() contracts.DIResolver { return s.container }

func counter(t *testing.T, reg prometheus.Registerer) prometheus.Counter {
	t.Helper()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "underc0de",
		Subsystem: "test",
		Name:      "calls_total",
		Help:      "Calls made by the test.",
	})
	require.NoError(t, reg.Register(c))
	return c
}

func TestNewRegistry_RuntimeCollectors(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

func TestExporter_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter(t, reg).Add(3)

	exp := NewExporter("127.0.0.1:0", reg, logger.NewLogger(logger.WithWriter(io.Discard)))
	require.NoError(t, exp.Start(context.Background()))
	defer func() { _ = exp.Stop(context.Background()) }()

	resp, err := http.Get("http://" + exp.Addr() + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "underc0de_test_calls_total 3")
}

func TestExporter_StartFailsOnBusyAddress(t *testing.T) {
	log := logger.NewLogger(logger.WithWriter(io.Discard))
	first := NewExporter("127.0.0.1:0", prometheus.NewRegistry(), log)
	require.NoError(t, first.Start(context.Background()))
	defer func() { _ = first.Stop(context.Background()) }()

	second := NewExporter(first.Addr(), prometheus.NewRegistry(), log)
	assert.ErrorIs(t, second.Start(context.Background()), ErrExporterStart)
	assert.NoError(t, second.Stop(context.Background()))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter(t, reg).Inc()

	path := filepath.Join(t.TempDir(), "underc0de.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "underc0de_test_calls_total 1")

	err = WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), reg)
	assert.ErrorIs(t, err, ErrTextfileWrite)
}

func TestModule_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "underc0de.prom")

	b := registry.NewBuilder()
	require.NoError(t, b.Instance(contracts.SettingsModuleName, &config.Settings{
		Metrics: config.MetricsSettings{Addr: "127.0.0.1:0", Textfile: path},
	}))
	require.NoError(t, b.Instance(contracts.LoggerModuleName, logger.NewLogger(logger.WithWriter(io.Discard))))

	m := NewModule()
	require.NoError(t, m.Register(b))
	r, err := b.Build()
	require.NoError(t, err)

	reg := registry.MustResolve[prometheus.Registerer](r, contracts.MetricsModuleName)
	counter(t, reg).Add(2)

	appCtx := &stubAppContext{container: r}
	require.NoError(t, m.Start(appCtx))
	require.NoError(t, m.Stop(appCtx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "underc0de_test_calls_total 2")
}
