package adminusers

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/modules/dashboard"
	"github.com/shuldan/underc0de-admin/pkg/session"
)

const (
	GetAdminUsersActionKey   = "getAdminUsersAction"
	EditAdminUserActionKey   = "editAdminUserAction"
	CreateAdminUserActionKey = "createAdminUserAction"
	DeleteAdminUserActionKey = "deleteAdminUserAction"
	GetAdminMetricsActionKey = "getAdminUsersMetricsAction"
)

type AdminUser struct {
	ID        string
	Email     string
	Name      string
	Role      string
	Status    bool
	CreatedAt string
	UpdatedAt string
}

// Input is a create or edit request. Nil fields are not sent.
type Input struct {
	Email    *string
	Name     *string
	Password *string
	Role     *string
	Status   *bool
}

func (in Input) validate() error {
	if in.Role != nil && *in.Role != session.RoleAdmin && *in.Role != session.RoleEditor {
		return ErrInvalidRole.WithDetail("role", *in.Role)
	}
	return nil
}

// body sends the role under rol, the name the API reads.
func (in Input) body() map[string]any {
	body := map[string]any{}
	if in.Email != nil {
		body["email"] = *in.Email
	}
	if in.Name != nil {
		body["name"] = *in.Name
	}
	if in.Password != nil && *in.Password != "" {
		body["password"] = *in.Password
	}
	if in.Role != nil {
		body["rol"] = session.APIRole(*in.Role)
	}
	if in.Status != nil {
		body["status"] = *in.Status
	}
	return body
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) List(ctx context.Context) ([]AdminUser, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/admin-users", nil))
	if err != nil {
		return nil, err
	}
	items, err := gateway.Items(data)
	if err != nil {
		return nil, err
	}
	users := make([]AdminUser, 0, len(items))
	for _, item := range items {
		u, err := toAdminUser(item)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (g *Gateway) Create(ctx context.Context, in Input) (AdminUser, error) {
	if err := in.validate(); err != nil {
		return AdminUser{}, err
	}
	return g.one(g.client.Post(ctx, "/admin-users", in.body()))
}

func (g *Gateway) Edit(ctx context.Context, id string, in Input) (AdminUser, error) {
	if err := in.validate(); err != nil {
		return AdminUser{}, err
	}
	return g.one(g.client.Put(ctx, "/admin-users/"+id, in.body()))
}

func (g *Gateway) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := gateway.Expect(g.client.Delete(ctx, "/admin-users/"+id, nil)); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Gateway) UsersMetrics(ctx context.Context) (dashboard.Metrics, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/admin-users/users-metrics", nil))
	if err != nil {
		return dashboard.Metrics{}, err
	}
	return dashboard.MapMetrics(data)
}

func (g *Gateway) one(env *contracts.HTTPEnvelope, err error) (AdminUser, error) {
	data, err := gateway.Expect(env, err)
	if err != nil {
		return AdminUser{}, err
	}
	obj, err := gateway.Object(data)
	if err != nil {
		return AdminUser{}, err
	}
	return toAdminUser(obj)
}

// toAdminUser accepts rol (list) or role (create and edit). Status defaults to
// active when the payload omits it.
func toAdminUser(obj gjson.Result) (AdminUser, error) {
	createdAt, err := gateway.FormatDate(obj, "createdAt")
	if err != nil {
		return AdminUser{}, err
	}
	updatedAt, err := gateway.FormatOptionalDate(obj, "updatedAt")
	if err != nil {
		return AdminUser{}, err
	}
	status := obj.Get("status")
	return AdminUser{
		ID:        obj.Get("id").String(),
		Email:     obj.Get("email").String(),
		Name:      obj.Get("name").String(),
		Role:      session.ParseRole(gateway.First(obj, "rol", "role").String()),
		Status:    !status.Exists() || status.Bool(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
