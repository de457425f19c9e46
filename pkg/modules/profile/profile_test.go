package profile

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/httpclient/httpclienttest"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

func TestMain(m *testing.M) {
	gateway.Location = time.UTC
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

type stubAppContext struct {
	contracts.AppContext
}

func (stubAppContext) Ctx() context.Context { return context.Background() }

type discardNavigator struct{}

func (discardNavigator) Navigate(context.Context, string, string) error { return nil }

func signedInManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(session.NewMemoryStore(), discardNavigator{}, logger.NewLogger(logger.WithWriter(io.Discard)))
	require.NoError(t, m.Login(context.Background(), "tok", session.User{ID: "1", Name: "Ana", Email: "ana@underc0de.org", Role: session.RoleAdmin}))
	return m
}

func TestGateway_GetByID(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users/1", 200, httpclienttest.Envelope(
		`{"id":1,"email":"ana@underc0de.org","name":"Ana","role":"Admin","createdAt":"2024-01-01T10:00:00Z"}`))

	p, err := NewGateway(api.Client(t)).GetByID(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, Profile{ID: "1", Email: "ana@underc0de.org", Name: "Ana", Role: session.RoleAdmin, CreatedAt: "01/01/2024 10:00"}, p)
}

func TestGateway_EmptyPayload(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users/1", 200, httpclienttest.Envelope(`null`))

	p, err := NewGateway(api.Client(t)).GetByID(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, Profile{Role: session.RoleEditor}, p)
}

func TestGateway_FallbackMessages(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users/1", 200, `{"success":false,"status":400,"msg":"","result":null}`)
	api.Handle("PATCH", "/admin-users/1", 200, `{"success":false,"status":400,"msg":"","result":null}`)
	g := NewGateway(api.Client(t))

	_, err := g.GetByID(context.Background(), "1")
	assert.EqualError(t, err, "Error al obtener perfil")

	_, err = g.Update(context.Background(), "1", UpdatePayload{Name: ptr("x")})
	assert.EqualError(t, err, "Error al actualizar perfil")
}

func TestGateway_UpdateSendsOnlyGivenFields(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/admin-users/1", 200, httpclienttest.Envelope(`{"id":1,"name":"Ana","rol":"Admin"}`))

	_, err := NewGateway(api.Client(t)).Update(context.Background(), "1", UpdatePayload{
		CurrentPassword: ptr("old-pass"),
		NewPassword:     ptr("new-pass"),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"currentPassword": "old-pass", "password": "new-pass"}, api.Last().JSON())
}

func TestCheckNewPassword(t *testing.T) {
	assert.ErrorIs(t, checkNewPassword("abcdef", "abcdeg"), ErrPasswordMismatch)
	assert.ErrorIs(t, checkNewPassword("abc", "abc"), ErrPasswordTooShort)
	assert.NoError(t, checkNewPassword("abcdef", "abcdef"))
	assert.Equal(t, "La nueva contraseña debe tener al menos 6 caracteres.", ErrPasswordTooShort.Text())
}

func commandBase(t *testing.T, api *httpclienttest.Server, manager *session.Manager) profileCommand {
	g := NewGateway(api.Client(t))
	return profileCommand{get: NewGetProfileAction(g), update: NewUpdateProfileAction(g), account: manager}
}

func TestShowCommand(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users/1", 200, httpclienttest.Envelope(
		`{"id":1,"email":"ana@underc0de.org","name":"Ana","rol":"Admin","createdAt":"2024-01-01T10:00:00Z"}`))
	cmd := &showCommand{commandBase(t, api, signedInManager(t))}

	var out bytes.Buffer
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Execute(cli.NewContext(stubAppContext{}, nil, &out, nil)))

	assert.Contains(t, out.String(), "Ana <ana@underc0de.org>")
	assert.Contains(t, out.String(), "created: 01/01/2024 10:00")
}

func TestUpdateCommand_SyncsSession(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/admin-users/1", 200, httpclienttest.Envelope(
		`{"id":1,"email":"ana@underc0de.org","name":"Ana María","rol":"Admin","createdAt":"2024-01-01T10:00:00Z"}`))
	manager := signedInManager(t)
	cmd := &updateCommand{profileCommand: commandBase(t, api, manager)}
	fs := flag.NewFlagSet("profile:update", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse([]string{"-name", "Ana María"}))

	var out bytes.Buffer
	require.NoError(t, cmd.Execute(cli.NewContext(stubAppContext{}, nil, &out, nil)))

	assert.Equal(t, "Perfil actualizado\n", out.String())
	user, ok := manager.User()
	require.True(t, ok)
	assert.Equal(t, "Ana María", user.Name)
}

func TestUpdateCommand_ChangesPassword(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/admin-users/1", 200, httpclienttest.Envelope(`{"id":1,"name":"Ana","email":"ana@underc0de.org","rol":"Admin"}`))
	cmd := &updateCommand{profileCommand: commandBase(t, api, signedInManager(t))}
	fs := flag.NewFlagSet("profile:update", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse([]string{"-password"}))

	var out bytes.Buffer
	input := strings.NewReader("old-pass\nnew-pass\nnew-pass\n")
	require.NoError(t, cmd.Execute(cli.NewContext(stubAppContext{}, input, &out, nil)))

	assert.Contains(t, out.String(), "Contraseña actualizada")
	assert.Equal(t, map[string]any{"currentPassword": "old-pass", "password": "new-pass"}, api.Last().JSON())
}

func TestUpdateCommand_Rejections(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		input  string
		target error
	}{
		{"nothing", nil, "", ErrNothingToUpdate},
		{"no current password", []string{"-password"}, "\n", ErrCurrentPasswordRequired},
		{"mismatch", []string{"-password"}, "old\nnew-pass\nother-pass\n", ErrPasswordMismatch},
		{"too short", []string{"-password"}, "old\nabc\nabc\n", ErrPasswordTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := httpclienttest.NewServer(t)
			cmd := &updateCommand{profileCommand: commandBase(t, api, signedInManager(t))}
			fs := flag.NewFlagSet("profile:update", flag.ContinueOnError)
			cmd.Configure(fs)
			require.NoError(t, fs.Parse(tc.args))

			err := cmd.Execute(cli.NewContext(stubAppContext{}, strings.NewReader(tc.input), &bytes.Buffer{}, nil))

			assert.ErrorIs(t, err, tc.target)
			assert.Empty(t, api.Requests())
		})
	}
}

func TestProfileCommand_RequiresSession(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), discardNavigator{}, logger.NewLogger(logger.WithWriter(io.Discard)))
	cmd := &showCommand{profileCommand{account: manager}}
	assert.ErrorIs(t, cmd.Validate(nil), session.ErrNotAuthenticated)
}
