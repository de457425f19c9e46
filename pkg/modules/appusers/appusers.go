package appusers

import (
	"context"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
)

const (
	GetAppUsersActionKey   = "getAppUsersAction"
	EditAppUserActionKey   = "editAppUserAction"
	CreateAppUserActionKey = "createAppUserAction"
	DeleteAppUserActionKey = "deleteAppUserAction"
)

const (
	SubscriptionActive    = "active"
	SubscriptionTrial     = "trial"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
	SubscriptionNone      = "none"
)

var subscriptions = []string{SubscriptionActive, SubscriptionTrial, SubscriptionExpired, SubscriptionCancelled, SubscriptionNone}

// AppUser is a customer of the mobile app.
type AppUser struct {
	ID                  string
	Email               string
	Name                string
	Phone               string
	Subscription        string
	SubscriptionPlan    string
	SubscriptionEndDate string
	Status              bool
	CreatedAt           string
	UpdatedAt           string
}

// Input is a create or edit request. Nil fields are not sent.
type Input struct {
	Email        *string
	Name         *string
	Phone        *string
	Subscription *string
	Status       *bool
}

func (in Input) body() map[string]any {
	body := map[string]any{}
	for key, v := range map[string]*string{
		"email":        in.Email,
		"name":         in.Name,
		"phone":        in.Phone,
		"subscription": in.Subscription,
	} {
		if v != nil {
			body[key] = *v
		}
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

func (g *Gateway) List(ctx context.Context) ([]AppUser, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/users", nil))
	if err != nil {
		return nil, err
	}
	items, err := gateway.Items(data)
	if err != nil {
		return nil, err
	}
	users := make([]AppUser, 0, len(items))
	for _, item := range items {
		u, err := toAppUser(item)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (g *Gateway) Create(ctx context.Context, in Input) (AppUser, error) {
	return one(g.client.Post(ctx, "/users", in.body()))
}

func (g *Gateway) Edit(ctx context.Context, id string, in Input) (AppUser, error) {
	return one(g.client.Put(ctx, "/users/"+id, in.body()))
}

func (g *Gateway) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := gateway.Expect(g.client.Delete(ctx, "/users/"+id, nil)); err != nil {
		return false, err
	}
	return true, nil
}

func one(env *contracts.HTTPEnvelope, err error) (AppUser, error) {
	data, err := gateway.Expect(env, err)
	if err != nil {
		return AppUser{}, err
	}
	obj, err := gateway.Object(data)
	if err != nil {
		return AppUser{}, err
	}
	return toAppUser(obj)
}

// toAppUser reads both payload shapes: the list nests the subscription as an
// object with its plans alongside, create and edit echo the flat fields.
func toAppUser(obj gjson.Result) (AppUser, error) {
	createdAt, err := gateway.FormatDate(obj, "createdAt")
	if err != nil {
		return AppUser{}, err
	}
	updatedAt, err := gateway.FormatOptionalDate(obj, "updatedAt")
	if err != nil {
		return AppUser{}, err
	}
	endDate, err := gateway.FormatOptionalDate(obj, firstPath(obj, "subscription.nextPaymentDate", "subscriptionEndDate"))
	if err != nil {
		return AppUser{}, err
	}

	status := obj.Get("status")
	return AppUser{
		ID:                  obj.Get("id").String(),
		Email:               obj.Get("email").String(),
		Name:                obj.Get("name").String(),
		Phone:               obj.Get("phone").String(),
		Subscription:        subscriptionOf(obj.Get("subscription")),
		SubscriptionPlan:    planOf(obj),
		SubscriptionEndDate: endDate,
		Status:              status.Type == gjson.Null || !status.Exists() || status.Bool(),
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}, nil
}

// subscriptionOf folds unknown or missing statuses into SubscriptionNone.
func subscriptionOf(v gjson.Result) string {
	if v.IsObject() {
		v = v.Get("status")
	}
	s := strings.ToLower(v.String())
	if slices.Contains(subscriptions, s) {
		return s
	}
	return SubscriptionNone
}

func planOf(obj gjson.Result) string {
	for _, plan := range obj.Get("subscriptionPlans").Array() {
		if plan.Get("status").String() == "ACTIVE" {
			return plan.Get("mpPreapprovalId").String()
		}
	}
	return obj.Get("subscriptionPlan").String()
}

func firstPath(obj gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() && v.Type != gjson.Null {
			return p
		}
	}
	return paths[0]
}
