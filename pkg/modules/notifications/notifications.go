package notifications

import (
	"context"
	"slices"
	"time"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
)

const (
	GetNotificationActionKey    = "getNotificationAction"
	CreateNotificationActionKey = "createNotificationAction"
	UpdateNotificationActionKey = "updateNotificationAction"
	DeleteNotificationActionKey = "deleteNotificationAction"
)

const (
	AudienceEveryone = "todos"
	AudiencePro      = "usersPro"
	AudienceRegular  = "normalUsers"
)

var audiences = []string{AudienceEveryone, AudiencePro, AudienceRegular}

// Notification is a push message to app users. ScheduledAt is kept as the
// API sends it.
type Notification struct {
	ID          string
	Title       string
	Message     string
	Audience    string
	ScheduledAt string
	CreatedAt   string
	CreatedBy   string
	UpdatedAt   string
	UpdatedBy   string
}

// Input is a create or update request. Author is the id of the signed-in
// admin, sent as createdBy or updatedBy.
type Input struct {
	Title       string
	Message     string
	Audience    string
	ScheduledAt string
	Author      string
}

func (in Input) validate() error {
	if in.Audience != "" && !slices.Contains(audiences, in.Audience) {
		return ErrInvalidAudience.WithDetail("audience", in.Audience)
	}
	return nil
}

// body stamps the request with today's date under stampKey and the author
// under authorKey.
func (in Input) body(authorKey, stampKey string, now time.Time) map[string]string {
	body := map[string]string{stampKey: gateway.DayStamp(now)}
	for key, v := range map[string]string{
		"title":       in.Title,
		"message":     in.Message,
		"audience":    in.Audience,
		"scheduledAt": in.ScheduledAt,
		authorKey:     in.Author,
	} {
		if v != "" {
			body[key] = v
		}
	}
	return body
}

type Gateway struct {
	client contracts.HTTPClient
	now    func() time.Time
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client, now: time.Now}
}

func (g *Gateway) List(ctx context.Context) ([]Notification, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/notifications", nil))
	if err != nil {
		return nil, err
	}
	items, err := gateway.Items(data)
	if err != nil {
		return nil, err
	}
	list := make([]Notification, 0, len(items))
	for _, item := range items {
		n, err := toNotification(item, true)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}

func (g *Gateway) Create(ctx context.Context, in Input) (Notification, error) {
	if err := in.validate(); err != nil {
		return Notification{}, err
	}
	return one(g.client.Post(ctx, "/notifications", in.body("createdBy", "createdAt", g.now())))
}

// Update expects the stored record back, creator included.
func (g *Gateway) Update(ctx context.Context, id string, in Input) (Notification, error) {
	if err := in.validate(); err != nil {
		return Notification{}, err
	}
	data, err := gateway.Expect(g.client.Patch(ctx, "/notifications/"+id, in.body("updatedBy", "updatedAt", g.now())))
	if err != nil {
		return Notification{}, err
	}
	obj, err := gateway.Object(data)
	if err != nil {
		return Notification{}, err
	}
	return toNotification(obj, true)
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	_, err := gateway.Expect(g.client.Delete(ctx, "/notifications/"+id, nil))
	return err
}

func one(env *contracts.HTTPEnvelope, err error) (Notification, error) {
	data, err := gateway.Expect(env, err)
	if err != nil {
		return Notification{}, err
	}
	obj, err := gateway.Object(data)
	if err != nil {
		return Notification{}, err
	}
	return toNotification(obj, false)
}

func toNotification(obj gjson.Result, withCreator bool) (Notification, error) {
	createdAt, err := gateway.FormatDate(obj, "createdAt")
	if err != nil {
		return Notification{}, err
	}
	updatedAt, err := gateway.FormatOptionalDate(obj, "updatedAt")
	if err != nil {
		return Notification{}, err
	}
	creator := obj.Get("creator.name")
	if withCreator {
		if creator, err = gateway.Require(obj, "creator.name"); err != nil {
			return Notification{}, err
		}
	}
	return Notification{
		ID:          obj.Get("id").String(),
		Title:       obj.Get("title").String(),
		Message:     obj.Get("message").String(),
		Audience:    obj.Get("audience").String(),
		ScheduledAt: obj.Get("scheduledAt").String(),
		CreatedAt:   createdAt,
		CreatedBy:   creator.String(),
		UpdatedAt:   updatedAt,
		UpdatedBy:   obj.Get("modifier.name").String(),
	}, nil
}
