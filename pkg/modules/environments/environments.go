package environments

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
)

const (
	GetEnvironmentActionKey    = "getEnvironmentAction"
	UpdateEnvironmentActionKey = "updateEnvironmentAction"
)

// SubscriptionPriceKey holds the monthly price charged through Mercado Pago.
const SubscriptionPriceKey = "MERCADO_PAGO_PRICE"

// Environment is a server-side setting. Values are always strings.
type Environment struct {
	Key   string
	Value string
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Get(ctx context.Context, key string) (Environment, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/environments/"+key, nil))
	if err != nil {
		return Environment{}, err
	}
	return toEnvironment(data, key), nil
}

func (g *Gateway) Update(ctx context.Context, key, value string) (Environment, error) {
	data, err := gateway.Expect(g.client.Patch(ctx, "/environments/"+key, map[string]string{"value": value}))
	if err != nil {
		return Environment{}, err
	}
	return toEnvironment(data, key), nil
}

// toEnvironment reads value from the payload or from its nested data object.
// Empty values fall through.
func toEnvironment(data gjson.Result, key string) Environment {
	value := data.Get("value").String()
	if value == "" {
		value = data.Get("data.value").String()
	}
	return Environment{Key: key, Value: value}
}

type Reader interface {
	Get(ctx context.Context, key string) (Environment, error)
}

type Writer interface {
	Update(ctx context.Context, key, value string) (Environment, error)
}

type GetEnvironmentAction struct{ gateway Reader }

func NewGetEnvironmentAction(g Reader) *GetEnvironmentAction {
	return &GetEnvironmentAction{gateway: g}
}

func (a *GetEnvironmentAction) Execute(ctx context.Context, key string) (Environment, error) {
	return a.gateway.Get(ctx, key)
}

type UpdateEnvironmentAction struct{ gateway Writer }

func NewUpdateEnvironmentAction(g Writer) *UpdateEnvironmentAction {
	return &UpdateEnvironmentAction{gateway: g}
}

func (a *UpdateEnvironmentAction) Execute(ctx context.Context, key, value string) (Environment, error) {
	return a.gateway.Update(ctx, key, value)
}

type Views interface {
	GetEnvironmentSuccess(env Environment)
	GetEnvironmentError(err error)
	UpdateEnvironmentSuccess(env Environment)
	UpdateEnvironmentError(err error)
}

type Presenter struct {
	get    *GetEnvironmentAction
	update *UpdateEnvironmentAction
	views  Views
}

func NewPresenter(get *GetEnvironmentAction, update *UpdateEnvironmentAction, views Views) *Presenter {
	return &Presenter{get: get, update: update, views: views}
}

func (p *Presenter) GetEnvironment(ctx context.Context, key string) {
	env, err := p.get.Execute(ctx, key)
	if err != nil {
		p.views.GetEnvironmentError(err)
		return
	}
	p.views.GetEnvironmentSuccess(env)
}

func (p *Presenter) UpdateEnvironment(ctx context.Context, key, value string) {
	env, err := p.update.Execute(ctx, key, value)
	if err != nil {
		p.views.UpdateEnvironmentError(err)
		return
	}
	p.views.UpdateEnvironmentSuccess(env)
}
