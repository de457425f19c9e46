package dashboard

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/httpclient/httpclienttest"
)

type recordingViews struct {
	metrics []Metrics
	errs    []error
}

func (v *recordingViews) GetMetrics(m Metrics)      { v.metrics = append(v.metrics, m) }
func (v *recordingViews) GetMetricsError(err error) { v.errs = append(v.errs, err) }

func TestGateway_UsersMetrics(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/users/metrics", 200, httpclienttest.Envelope(`{"users":120,"merchants":14,"notifications":3}`))

	m, err := NewGateway(api.Client(t)).UsersMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Metrics{Users: 120, Merchants: 14, Notifications: 3}, m)
}

func TestMapMetrics_RejectsNonObject(t *testing.T) {
	_, err := MapMetrics(gjson.Parse(`[1,2]`))
	assert.ErrorIs(t, err, gateway.ErrMalformedPayload)
}

func TestPresenter_CallsExactlyOneHandler(t *testing.T) {
	api := httpclienttest.NewServer(t)
	action := NewGetUserMetricsAction(NewGateway(api.Client(t)))

	api.Handle("GET", "/users/metrics", 200, httpclienttest.Envelope(`{"users":1,"subscriptions":9}`))
	views := &recordingViews{}
	NewPresenter(action, views).GetMetrics(context.Background())
	assert.Equal(t, []Metrics{{Users: 1, Subscriptions: 9}}, views.metrics)
	assert.Empty(t, views.errs)

	api.Handle("GET", "/users/metrics", 200, httpclienttest.Rejection(403, "Sin permisos"))
	views = &recordingViews{}
	NewPresenter(action, views).GetMetrics(context.Background())
	assert.Empty(t, views.metrics)
	require.Len(t, views.errs, 1)
	assert.EqualError(t, views.errs[0], "Sin permisos")
}

func TestMetricsView_RendersTable(t *testing.T) {
	var out bytes.Buffer
	v := &metricsView{View: cli.NewView(&out)}

	v.GetMetrics(Metrics{Users: 5, Merchants: 2})

	require.NoError(t, v.Result())
	assert.Contains(t, out.String(), "Usuarios")
	assert.Contains(t, out.String(), "5")
}
