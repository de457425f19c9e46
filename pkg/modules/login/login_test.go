package login

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/httpclient/httpclienttest"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const activeLogin = `{"token":"tok-1","user":{"id":7,"email":"ana@underc0de.org","name":"Ana","rol":"Admin","status":true}}`

type recordingViews struct {
	results []Result
	errs    []error
}

func (v *recordingViews) OnLoginSuccess(r Result) { v.results = append(v.results, r) }
func (v *recordingViews) OnLoginError(err error)  { v.errs = append(v.errs, err) }

type discardNavigator struct{}

func (discardNavigator) Navigate(context.Context, string, string) error { return nil }

type stubAppContext struct {
	contracts.AppContext
}

func (stubAppContext) Ctx() context.Context { return context.Background() }

func TestGateway_Login(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(activeLogin))

	result, err := NewGateway(api.Client(t)).Login(context.Background(), "ana@underc0de.org", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, session.User{ID: "7", Email: "ana@underc0de.org", Name: "Ana", Role: session.RoleAdmin}, result.User)
	assert.Equal(t, map[string]any{"email": "ana@underc0de.org", "password": "s3cret"}, api.Last().JSON())
}

func TestGateway_LoginRejectsInactiveUser(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(
		`{"token":"tok-1","user":{"id":7,"name":"Ana","role":"Editor","status":false}}`))

	_, err := NewGateway(api.Client(t)).Login(context.Background(), "ana@underc0de.org", "s3cret")

	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrRejected)
	assert.EqualError(t, err, "Usuario no activo")
}

func TestGateway_LoginFailures(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		message string
		target  error
	}{
		{"bad credentials", 200, httpclienttest.Rejection(400, "Credenciales inválidas"), "Credenciales inválidas", gateway.ErrRejected},
		{"missing user", 200, httpclienttest.Envelope(`{"token":"tok-1"}`), "", gateway.ErrMalformedPayload},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := httpclienttest.NewServer(t)
			api.Handle("POST", "/admin-users/login", tc.status, tc.body)

			_, err := NewGateway(api.Client(t)).Login(context.Background(), "x@y.z", "pw")

			assert.ErrorIs(t, err, tc.target)
			if tc.message != "" {
				assert.EqualError(t, err, tc.message)
			}
		})
	}
}

func TestPresenter_Login(t *testing.T) {
	api := httpclienttest.NewServer(t)
	action := NewLoginAction(NewGateway(api.Client(t)))

	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(activeLogin))
	views := &recordingViews{}
	NewPresenter(action, views).Login(context.Background(), "ana@underc0de.org", "s3cret")
	require.Len(t, views.results, 1)
	assert.Empty(t, views.errs)

	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Rejection(404, "Usuario no encontrado"))
	views = &recordingViews{}
	NewPresenter(action, views).Login(context.Background(), "nobody@underc0de.org", "s3cret")
	assert.Empty(t, views.results)
	require.Len(t, views.errs, 1)
}

func TestLoginCommand_StartsSession(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(activeLogin))

	manager := session.NewManager(session.NewMemoryStore(), discardNavigator{}, logger.NewLogger(logger.WithWriter(io.Discard)))
	cmd := &loginCommand{action: NewLoginAction(NewGateway(api.Client(t))), manager: manager, email: "ana@underc0de.org"}

	var out bytes.Buffer
	err := cmd.Execute(cli.NewContext(stubAppContext{}, strings.NewReader("s3cret\n"), &out, nil))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Welcome, Ana (admin)")
	user, ok := manager.User()
	require.True(t, ok)
	assert.Equal(t, "7", user.ID)
	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLoginCommand_ReportsInactiveUser(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(
		`{"token":"tok-1","user":{"id":7,"name":"Ana","status":false}}`))

	manager := session.NewManager(session.NewMemoryStore(), discardNavigator{}, logger.NewLogger(logger.WithWriter(io.Discard)))
	cmd := &loginCommand{action: NewLoginAction(NewGateway(api.Client(t))), manager: manager}

	var out bytes.Buffer
	err := cmd.Execute(cli.NewContext(stubAppContext{}, strings.NewReader("ana@underc0de.org\ns3cret\n"), &out, nil))

	assert.ErrorIs(t, err, cli.ErrReported)
	assert.Contains(t, out.String(), "Error: Usuario no activo")
	assert.False(t, manager.IsAuthenticated())
}
