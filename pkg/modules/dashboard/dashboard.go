package dashboard

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
)

const GetUserMetricsActionKey = "getUserMetricsAction"

// Metrics are the aggregate counters shown on the dashboard.
type Metrics struct {
	Users         int64 `json:"users"`
	Merchants     int64 `json:"merchants"`
	Notifications int64 `json:"notifications"`
	Subscriptions int64 `json:"subscriptions"`
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) UsersMetrics(ctx context.Context) (Metrics, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/users/metrics", nil))
	if err != nil {
		return Metrics{}, err
	}
	return MapMetrics(data)
}

// MapMetrics reads the counters of a metrics payload; absent counters are 0.
func MapMetrics(data gjson.Result) (Metrics, error) {
	obj, err := gateway.Object(data)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Users:         obj.Get("users").Int(),
		Merchants:     obj.Get("merchants").Int(),
		Notifications: obj.Get("notifications").Int(),
		Subscriptions: obj.Get("subscriptions").Int(),
	}, nil
}

type MetricsSource interface {
	UsersMetrics(ctx context.Context) (Metrics, error)
}

type GetUserMetricsAction struct {
	gateway MetricsSource
}

func NewGetUserMetricsAction(g MetricsSource) *GetUserMetricsAction {
	return &GetUserMetricsAction{gateway: g}
}

func (a *GetUserMetricsAction) Execute(ctx context.Context) (Metrics, error) {
	return a.gateway.UsersMetrics(ctx)
}

type Views interface {
	GetMetrics(metrics Metrics)
	GetMetricsError(err error)
}

type Presenter struct {
	getUserMetrics *GetUserMetricsAction
	views          Views
}

func NewPresenter(getUserMetrics *GetUserMetricsAction, views Views) *Presenter {
	return &Presenter{getUserMetrics: getUserMetrics, views: views}
}

func (p *Presenter) GetMetrics(ctx context.Context) {
	metrics, err := p.getUserMetrics.Execute(ctx)
	if err != nil {
		p.views.GetMetricsError(err)
		return
	}
	p.views.GetMetrics(metrics)
}
