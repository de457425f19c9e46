package bootstrap

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/app"
	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/httpclient/httpclienttest"
	"github.com/shuldan/underc0de-admin/pkg/logger"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const envPrefix = "UNDERC0DE_IT_"

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	a, err := New("underc0de-admin", "test", envPrefix, filepath.Join(t.TempDir(), "absent.yaml")).
		WithAppOptions(app.WithoutSignalHandler()).
		WithLogger(logger.WithWriter(io.Discard)).
		WithEventBus().
		WithNavigation(io.Discard).
		WithMetrics().
		WithDatabase().
		WithSession().
		WithHTTPClient().
		WithBackoffice().
		WithCli(args, strings.NewReader(input), &out).
		CreateApp()
	require.NoError(t, err)

	err = a.Run()
	return out.String(), err
}

func configure(t *testing.T, api *httpclienttest.Server) string {
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(envPrefix+"API__BASE_URL", api.URL)
	t.Setenv(envPrefix+"HTTP__RETRY__MAX", "0")
	t.Setenv(envPrefix+"SESSION__DRIVER", "file")
	t.Setenv(envPrefix+"SESSION__FILE", sessionFile)
	return sessionFile
}

func TestCreateApp_RejectsDuplicateModules(t *testing.T) {
	_, err := New("underc0de-admin", "test", envPrefix).WithBackoffice().WithBackoffice().CreateApp()

	assert.Error(t, err)
}

func TestApp_HelpListsBackofficeCommands(t *testing.T) {
	configure(t, httpclienttest.NewServer(t))

	out, err := run(t, "", "help")

	require.NoError(t, err)
	for _, name := range []string{"login", "users:list", "commerces:create", "environments:set", "profile:update"} {
		assert.Contains(t, out, name)
	}
}

func TestApp_LoginPersistsAcrossRuns(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(
		`{"token":"tok-1","user":{"id":7,"email":"ana@underc0de.org","name":"Ana","rol":"Admin","status":true}}`))
	api.Handle("GET", "/users", 200, httpclienttest.Envelope(`[]`))
	configure(t, api)

	out, err := run(t, "s3cret\n", "login", "-email", "ana@underc0de.org")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ana (admin)")

	out, err = run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@underc0de.org>")

	_, err = run(t, "", "users:list")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", api.Last().Header.Get("Authorization"))
}

func TestApp_ReportedFailureIsNotRepeated(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Rejection(404, "Usuario no encontrado"))
	configure(t, api)

	out, err := run(t, "s3cret\n", "login", "-email", "nobody@underc0de.org")

	assert.ErrorIs(t, err, cli.ErrReported)
	assert.Equal(t, 1, strings.Count(out, "Usuario no encontrado"))
}

func TestApp_UnauthorizedClearsStoredSession(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users/login", 200, httpclienttest.Envelope(
		`{"token":"tok-1","user":{"id":7,"email":"ana@underc0de.org","name":"Ana","rol":"Admin","status":true}}`))
	api.Handle("GET", "/users", 401, `{"msg":"Token expirado"}`)
	sessionFile := configure(t, api)

	_, err := run(t, "s3cret\n", "login", "-email", "ana@underc0de.org")
	require.NoError(t, err)

	store := session.NewFileStore(sessionFile, time.Second)
	_, hasToken, err := store.Get(context.Background(), contracts.SessionTokenKey)
	require.NoError(t, err)
	require.True(t, hasToken)

	_, err = run(t, "", "users:list")
	assert.ErrorIs(t, err, cli.ErrReported)

	_, hasToken, err = store.Get(context.Background(), contracts.SessionTokenKey)
	require.NoError(t, err)
	_, hasUser, err := store.Get(context.Background(), contracts.SessionUserKey)
	require.NoError(t, err)
	assert.False(t, hasToken)
	assert.False(t, hasUser)

	_, err = run(t, "", "whoami")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}
