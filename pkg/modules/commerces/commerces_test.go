package commerces

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
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

func ptr[T any](v T) *T { return &v }

type stubAppContext struct {
	contracts.AppContext
}

func (stubAppContext) Ctx() context.Context { return context.Background() }

const storedCommerce = `{"id":5,"name":"Café Tor","category":"food","address":"Calle 1","status":true,
	"logo":"https://cdn.underc0de.org/5.png","usersProDisccount":15,"usersDisccount":null,
	"url":"https://cafetor.es","detail":"Desayunos","createdAt":"2024-06-01T08:00:00Z","updatedAt":"2024-06-03T08:00:00Z"}`

func TestGateway_List(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/commerces", 200, httpclienttest.Envelope("["+storedCommerce+"]"))

	commerces, err := NewGateway(api.Client(t)).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Commerce{{
		ID: "5", Name: "Café Tor", Category: "food", Address: "Calle 1", Status: true,
		Logo: "https://cdn.underc0de.org/5.png", UsersProDiscount: ptr(15.0),
		URL: "https://cafetor.es", Detail: "Desayunos",
		CreatedAt: "01/06/2024 08:00", UpdatedAt: "03/06/2024 08:00",
	}}, commerces)
}

func TestGateway_CreateSendsMultipart(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/commerces", 200, httpclienttest.Envelope(storedCommerce))

	_, err := NewGateway(api.Client(t)).Create(context.Background(), Input{
		Name:             "Café Tor",
		Address:          "Calle 1",
		Status:           ptr(true),
		UsersProDiscount: ptr(15.0),
		URL:              "https://cafetor.es",
		Logo:             &Logo{Filename: "logo.png", Content: []byte("png")},
	})

	require.NoError(t, err)
	req := api.Last()
	assert.Equal(t, map[string]string{
		"name":              "Café Tor",
		"address":           "Calle 1",
		"status":            "true",
		"usersProDisccount": "15",
	}, req.Form)
	assert.Equal(t, map[string][]byte{"logo": []byte("png")}, req.Files)
}

func TestGateway_UpdateSkipsEmptyLogo(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("PATCH", "/commerces/5", 200, httpclienttest.Envelope(storedCommerce))

	commerce, err := NewGateway(api.Client(t)).Update(context.Background(), "5", Input{
		UsersDiscount: ptr(7.5),
		URL:           "https://cafetor.es",
		Detail:        "Desayunos",
		Logo:          &Logo{Filename: "empty.png"},
	})

	require.NoError(t, err)
	assert.Equal(t, "5", commerce.ID)
	req := api.Last()
	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, map[string]string{
		"usersDisccount": "7.5",
		"url":            "https://cafetor.es",
		"detail":         "Desayunos",
	}, req.Form)
	assert.Empty(t, req.Files)
}

func TestGateway_CreateSkipsEmptyLogo(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/commerces", 200, httpclienttest.Envelope(storedCommerce))

	_, err := NewGateway(api.Client(t)).Create(context.Background(), Input{
		Name: "Café Tor",
		Logo: &Logo{Filename: "empty.png", Content: []byte{}},
	})

	require.NoError(t, err)
	req := api.Last()
	assert.Equal(t, map[string]string{"name": "Café Tor"}, req.Form)
	assert.Empty(t, req.Files)
}

func TestGateway_DeleteRejected(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("DELETE", "/commerces/5", 200, httpclienttest.Rejection(404, "Comercio no encontrado"))

	err := NewGateway(api.Client(t)).Delete(context.Background(), "5")

	assert.EqualError(t, err, "Comercio no encontrado")
}

type recordingViews struct {
	calls []string
}

func (v *recordingViews) GetCommercesSuccess([]Commerce) { v.calls = append(v.calls, "getCommercesSuccess") }
func (v *recordingViews) GetCommercesError(error)        { v.calls = append(v.calls, "getCommercesError") }
func (v *recordingViews) CreateCommerceSuccess(Commerce) { v.calls = append(v.calls, "createCommerceSuccess") }
func (v *recordingViews) CreateCommerceError(error)      { v.calls = append(v.calls, "createCommerceError") }
func (v *recordingViews) UpdateCommerceSuccess(Commerce) { v.calls = append(v.calls, "updateCommerceSuccess") }
func (v *recordingViews) UpdateCommerceError(error)      { v.calls = append(v.calls, "updateCommerceError") }
func (v *recordingViews) DeleteCommerceSuccess()         { v.calls = append(v.calls, "deleteCommerceSuccess") }
func (v *recordingViews) DeleteCommerceError(error)      { v.calls = append(v.calls, "deleteCommerceError") }

func actionsFor(g *Gateway) Actions {
	return Actions{
		Get:    NewGetCommerceAction(g),
		Create: NewCreateCommerceAction(g),
		Update: NewUpdateCommerceAction(g),
		Delete: NewDeleteCommerceAction(g),
	}
}

func TestPresenter_OneCallbackPerOperation(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("GET", "/commerces", 200, httpclienttest.Envelope(`{"unexpected":true}`))
	api.Handle("POST", "/commerces", 200, httpclienttest.Envelope(storedCommerce))
	api.Handle("DELETE", "/commerces/5", 200, httpclienttest.Envelope(`true`))

	views := &recordingViews{}
	p := NewPresenter(actionsFor(NewGateway(api.Client(t))), views)
	ctx := context.Background()

	p.GetCommerces(ctx)
	p.CreateCommerce(ctx, Input{Name: "Café Tor"})
	p.UpdateCommerce(ctx, "9", Input{Name: "x"})
	p.DeleteCommerce(ctx, "5")

	assert.Equal(t, []string{"getCommercesError", "createCommerceSuccess", "updateCommerceError", "deleteCommerceSuccess"}, views.calls)
}

func TestSaveCommand_UploadsLogo(t *testing.T) {
	api := httpclienttest.NewServer(t)
	api.Handle("POST", "/commerces", 200, httpclienttest.Envelope(storedCommerce))
	logo := filepath.Join(t.TempDir(), "tor.png")
	require.NoError(t, os.WriteFile(logo, []byte("png-bytes"), 0o600))

	cmd := &saveCommand{actions: actionsFor(NewGateway(api.Client(t)))}
	fs := flag.NewFlagSet("commerces:create", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse([]string{
		"-name", "Café Tor", "-address", "Calle 1", "-pro-discount", "15", "-discount", "null", "-logo", logo,
	}))

	var out bytes.Buffer
	require.NoError(t, cmd.Execute(cli.NewContext(stubAppContext{}, nil, &out, nil)))

	req := api.Last()
	assert.Equal(t, "15", req.Form["usersProDisccount"])
	assert.NotContains(t, req.Form, "usersDisccount")
	assert.Equal(t, []byte("png-bytes"), req.Files["logo"])
	assert.Contains(t, out.String(), "Created merchant 5")
}

func TestSaveCommand_MissingLogo(t *testing.T) {
	cmd := &saveCommand{update: true}
	fs := flag.NewFlagSet("commerces:update", flag.ContinueOnError)
	cmd.Configure(fs)
	require.NoError(t, fs.Parse([]string{"-id", "5", "-logo", filepath.Join(t.TempDir(), "nope.png")}))

	err := cmd.Execute(cli.NewContext(stubAppContext{}, nil, &bytes.Buffer{}, nil))

	assert.ErrorIs(t, err, ErrLogoRead)
}
