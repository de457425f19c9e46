package adminusers

import (
	"bytes"
	"context"
	"flag"
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
)

func TestMain(m *testing.M) {
	gateway.Location = time.UTC
	os.Exit(m.Run())
}

const listBody = `[
	{"id":1,"email":"ana@underc0de.org","name":"Ana","rol":"Admin","status":true,
	 "createdAt":"2024-03-01T10:30:00Z","updatedAt":"2024-03-02T08:00:00Z"},
	{"id":2,"email":"eve@underc0de.org","name":"Eve","rol":"Editor","status":false,
	 "createdAt":"2024-03-05T12:00:00Z"}
]`

func ptr[T any](v T) *T { return &v }

type stubAppContext struct {
	contracts.AppContext
}

func (stubAppContext) Ctx() context.Context { return context.Background() }

func TestGateway_List(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users", 200, httpclienttest.Envelope(listBody))

	users, err := NewGateway(api.Client(t)).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []AdminUser{
		{ID: "1", Email: "ana@underc0de.org", Name: "Ana", Role: "admin", Status: true, CreatedAt: "01/03/2024 10:30", UpdatedAt: "02/03/2024 08:00"},
		{ID: "2", Email: "eve@underc0de.org", Name: "Eve", Role: "editor", Status: false, CreatedAt: "05/03/2024 12:00"},
	}, users)
}

func TestGateway_ListMalformed(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users", 200, httpclienttest.Envelope(`[{"id":1,"createdAt":"yesterday"}]`))

	_, err := NewGateway(api.Client(t)).List(context.Background())

	assert.ErrorIs(t, err, gateway.ErrMalformedPayload)
}

func TestGateway_CreateSendsRol(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users", 200, httpclienttest.Envelope(
		`{"id":3,"email":"bob@underc0de.org","name":"Bob","role":"Editor","createdAt":"2024-04-01T09:00:00Z"}`))

	user, err := NewGateway(api.Client(t)).Create(context.Background(), Input{
		Email:    ptr("bob@underc0de.org"),
		Name:     ptr("Bob"),
		Password: ptr("s3cret"),
		Role:     ptr("editor"),
	})

	require.NoError(t, err)
	assert.Equal(t, AdminUser{ID: "3", Email: "bob@underc0de.org", Name: "Bob", Role: "editor", Status: true, CreatedAt: "01/04/2024 09:00"}, user)
	assert.Equal(t, map[string]any{
		"email":    "bob@underc0de.org",
		"name":     "Bob",
		"password": "s3cret",
		"rol":      "Editor",
	}, api.Last().JSON())
}

func TestGateway_CreateRejectsUnknownRole(t *testing.T) {
	api := httpclienttest.NewServer(t)

	_, err := NewGateway(api.Client(t)).Create(context.Background(), Input{Role: ptr("root")})

	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, api.Requests())
}

func TestGateway_EditSendsOnlyGivenFields(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/admin-users/3", 200, httpclienttest.Envelope(
		`{"id":3,"name":"Bob","role":"Admin","createdAt":"2024-04-01T09:00:00Z","updatedAt":"2024-04-02T09:00:00Z"}`))

	user, err := NewGateway(api.Client(t)).Edit(context.Background(), "3", Input{Role: ptr("admin"), Status: ptr(false)})

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "PATCH", api.Last().Method)
	assert.Equal(t, map[string]any{"rol": "Admin", "status": false}, api.Last().JSON())
}

func TestGateway_Delete(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("DELETE", "/admin-users/3", 200, httpclienttest.Envelope(`null`))

	deleted, err := NewGateway(api.Client(t)).Delete(context.Background(), "3")
	require.NoError(t, err)
	assert.True(t, deleted)

	api.Handle("DELETE", "/admin-users/3", 200, httpclienttest.Rejection(409, "No puedes borrarte a ti mismo"))
	deleted, err = NewGateway(api.Client(t)).Delete(context.Background(), "3")
	assert.False(t, deleted)
	assert.EqualError(t, err, "No puedes borrarte a ti mismo")
}

func TestGateway_UsersMetrics(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users/users-metrics", 200, httpclienttest.Envelope(`{"users":10,"subscriptions":4}`))

	m, err := NewGateway(api.Client(t)).UsersMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), m.Users)
	assert.Equal(t, int64(4), m.Subscriptions)
}

type recordingViews struct {
	calls []string
}

func (v *recordingViews) GetUsersSuccess([]AdminUser) { v.calls = append(v.calls, "getUsersSuccess") }
func (v *recordingViews) GetUsersError(error)         { v.calls = append(v.calls, "getUsersError") }
func (v *recordingViews) UpdateUserSuccess(AdminUser) { v.calls = append(v.calls, "updateUserSuccess") }
func (v *recordingViews) UpdateUserError(error)       { v.calls = append(v.calls, "updateUserError") }
func (v *recordingViews) CreateUserSuccess(AdminUser) { v.calls = append(v.calls, "createUserSuccess") }
func (v *recordingViews) CreateUserError(error)       { v.calls = append(v.calls, "createUserError") }
func (v *recordingViews) DeleteUserSuccess(bool)      { v.calls = append(v.calls, "deleteUserSuccess") }
func (v *recordingViews) DeleteUserError(error)       { v.calls = append(v.calls, "deleteUserError") }

func actionsFor(g *Gateway) Actions {
	return Actions{
		Get:    NewGetAdminUsersAction(g),
		Edit:   NewEditAdminUserAction(g),
		Create: NewCreateAdminUserAction(g),
		Delete: NewDeleteAdminUserAction(g),
	}
}

func TestPresenter_OneCallbackPerOperation(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users", 200, httpclienttest.Envelope(listBody))
	api.Handle("POST", "/admin-users", 200, httpclienttest.Rejection(400, "Email ya registrado"))
	api.Handle("DELETE", "/admin-users/1", 200, httpclienttest.Envelope(`true`))

	views := &recordingViews{}
	p := NewPresenter(actionsFor(NewGateway(api.Client(t))), views)
	ctx := context.Background()

	p.GetAdminUsers(ctx)
	p.CreateAdminUser(ctx, Input{Email: ptr("ana@underc0de.org")})
	p.UpdateAdminUser(ctx, "9", Input{Name: ptr("x")})
	p.DeleteAdminUser(ctx, "1")

	assert.Equal(t, []string{"getUsersSuccess", "createUserError", "updateUserError", "deleteUserSuccess"}, views.calls)
}

func TestCreateCommand(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/admin-users", 200, httpclienttest.Envelope(
		`{"id":3,"email":"bob@underc0de.org","name":"Bob","role":"Editor","createdAt":"2024-04-01T09:00:00Z"}`))

	cmd := &createCommand{actions: actionsFor(NewGateway(api.Client(t)))}
	fs := flag.NewFlagSet("admin-users:create", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse([]string{"-email", "bob@underc0de.org", "-name", "Bob", "-role", "editor"}))

	var out bytes.Buffer
	err := cmd.Execute(cli.NewContext(stubAppContext{}, strings.NewReader("s3cret\n"), &out, nil))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created account 3")
	assert.Equal(t, "s3cret", api.Last().JSON()["password"])
}

func TestEditCommand_RequiresID(t *testing.T) {
	cmd := &editCommand{}
	err := cmd.Execute(cli.NewContext(stubAppContext{}, strings.NewReader(""), &bytes.Buffer{}, nil))
	assert.ErrorIs(t, err, cli.ErrMissingArgument)
}

func TestListCommand_ReportsError(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/admin-users", 200, httpclienttest.Rejection(403, "Sin permisos"))

	cmd := &listCommand{actions: actionsFor(NewGateway(api.Client(t)))}
	var out bytes.Buffer
	err := cmd.Execute(cli.NewContext(stubAppContext{}, nil, &out, nil))

	assert.ErrorIs(t, err, cli.ErrReported)
	assert.Equal(t, "Error: Sin permisos\n", out.String())
}
