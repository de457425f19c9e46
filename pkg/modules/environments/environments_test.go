package environments

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/httpclient/httpclienttest"
)

type stubAppContext struct {
	contracts.AppContext
}

func (stubAppContext) Ctx() context.Context { return context.Background() }

func TestGateway_GetValueShapes(t *testing.T) {
	testCases := []struct {
		name     string
		result   string
		expected string
	}{
		{"flat", `{"key":"MERCADO_PAGO_PRICE","value":"4999"}`, "4999"},
		{"nested", `{"data":{"value":"5999"}}`, "5999"},
		{"numeric", `{"value":4999}`, "4999"},
		{"empty flat falls back", `{"value":"","data":{"value":"10"}}`, "10"},
		{"missing", `{}`, ""},
		{"null result", `null`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := httpclienttest.NewServer(t)
			api.Handle("GET", "/environments/"+SubscriptionPriceKey, 200, httpclienttest.Envelope(tc.result))

			env, err := NewGateway(api.Client(t)).Get(context.Background(), SubscriptionPriceKey)

			require.NoError(t, err)
			assert.Equal(t, Environment{Key: SubscriptionPriceKey, Value: tc.expected}, env)
		})
	}
}

func TestGateway_Update(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/environments/"+SubscriptionPriceKey, 200, httpclienttest.Envelope(`{"value":"6500"}`))

	env, err := NewGateway(api.Client(t)).Update(context.Background(), SubscriptionPriceKey, "6500")

	require.NoError(t, err)
	assert.Equal(t, "6500", env.Value)
	assert.Equal(t, map[string]any{"value": "6500"}, api.Last().JSON())
}

type recordingViews struct {
	calls []string
}

func (v *recordingViews) GetEnvironmentSuccess(Environment)    { v.calls = append(v.calls, "getSuccess") }
func (v *recordingViews) GetEnvironmentError(error)            { v.calls = append(v.calls, "getError") }
func (v *recordingViews) UpdateEnvironmentSuccess(Environment) { v.calls = append(v.calls, "updateSuccess") }
func (v *recordingViews) UpdateEnvironmentError(error)         { v.calls = append(v.calls, "updateError") }

func TestPresenter_OneCallbackPerOperation(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/environments/A", 200, httpclienttest.Envelope(`{"value":"1"}`))
	api.Handle("PATCH", "/environments/A", 200, httpclienttest.Rejection(422, "Valor inválido"))
	g := NewGateway(api.Client(t))

	views := &recordingViews{}
	p := NewPresenter(NewGetEnvironmentAction(g), NewUpdateEnvironmentAction(g), views)
	p.GetEnvironment(context.Background(), "A")
	p.UpdateEnvironment(context.Background(), "A", "x")

	assert.Equal(t, []string{"getSuccess", "updateError"}, views.calls)
}

func TestEnvCommand_DefaultsToSubscriptionPrice(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/environments/"+SubscriptionPriceKey, 200, httpclienttest.Envelope(`{"value":"4999"}`))
	g := NewGateway(api.Client(t))

	cmd := &envCommand{get: NewGetEnvironmentAction(g), update: NewUpdateEnvironmentAction(g)}
	fs := flag.NewFlagSet("environments:get", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse(nil))

	var out bytes.Buffer
	require.NoError(t, cmd.Execute(cli.NewContext(stubAppContext{}, nil, &out, nil)))

	assert.Equal(t, "MERCADO_PAGO_PRICE=4999\n", out.String())
}

func TestEnvCommand_SetRequiresValue(t *testing.T) {
	cmd := &envCommand{write: true}
	fs := flag.NewFlagSet("environments:set", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse(nil))

	err := cmd.Execute(cli.NewContext(stubAppContext{}, nil, &bytes.Buffer{}, nil))

	assert.ErrorIs(t, err, cli.ErrMissingArgument)
}
