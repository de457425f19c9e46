package commerces

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/gateway"
	"github.com/shuldan/underc0de-admin/pkg/httpclient"
)

const (
	GetCommerceActionKey    = "getCommerceAction"
	CreateCommerceActionKey = "createCommerceAction"
	UpdateCommerceActionKey = "updateCommerceAction"
	DeleteCommerceActionKey = "deleteCommerceAction"
)

// Commerce is a merchant offering discounts to app users. Discounts are nil
// when the merchant has none configured.
type Commerce struct {
	ID               string
	Name             string
	Category         string
	Address          string
	Phone            string
	Email            string
	Status           bool
	Logo             string
	UsersProDiscount *float64
	UsersDiscount    *float64
	URL              string
	Detail           string
	CreatedAt        string
	UpdatedAt        string
}

// Logo is an image upload. A commerce keeps its current logo unless a new
// file is sent.
type Logo struct {
	Filename string
	Content  []byte
}

// Input is a create or update request. Empty strings and nil values are
// left out of the form.
type Input struct {
	Name             string
	Category         string
	Address          string
	Phone            string
	Email            string
	Status           *bool
	UsersProDiscount *float64
	UsersDiscount    *float64
	URL              string
	Detail           string
	Logo             *Logo
}

// form builds the multipart body. URL and detail are only sent on update,
// and an update ignores an empty logo file.
func (in Input) form(update bool) *httpclient.FormData {
	form := httpclient.NewFormData()
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"category", in.Category},
		{"address", in.Address},
		{"phone", in.Phone},
		{"email", in.Email},
	} {
		if f.value != "" {
			form.Append(f.name, f.value)
		}
	}
	if in.Status != nil {
		form.Append("status", strconv.FormatBool(*in.Status))
	}
	if in.UsersProDiscount != nil {
		form.Append("usersProDisccount", formatFloat(*in.UsersProDiscount))
	}
	if in.UsersDiscount != nil {
		form.Append("usersDisccount", formatFloat(*in.UsersDiscount))
	}
	if update {
		if in.URL != "" {
			form.Append("url", in.URL)
		}
		if in.Detail != "" {
			form.Append("detail", in.Detail)
		}
	}
	if in.Logo != nil && len(in.Logo.Content) > 0 {
		form.AppendFile("logo", in.Logo.Filename, in.Logo.Content)
	}
	return form
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Gateway struct {
	client contracts.HTTPClient
}

func NewGateway(client contracts.HTTPClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) List(ctx context.Context) ([]Commerce, error) {
	data, err := gateway.Expect(g.client.Get(ctx, "/commerces", nil))
	if err != nil {
		return nil, err
	}
	items, err := gateway.Items(data)
	if err != nil {
		return nil, err
	}
	commerces := make([]Commerce, 0, len(items))
	for _, item := range items {
		c, err := toCommerce(item)
		if err != nil {
			return nil, err
		}
		commerces = append(commerces, c)
	}
	return commerces, nil
}

func (g *Gateway) Create(ctx context.Context, in Input) (Commerce, error) {
	return one(g.client.Post(ctx, "/commerces", in.form(false)))
}

func (g *Gateway) Update(ctx context.Context, id string, in Input) (Commerce, error) {
	return one(g.client.Patch(ctx, "/commerces/"+id, in.form(true)))
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	_, err := gateway.Expect(g.client.Delete(ctx, "/commerces/"+id, nil))
	return err
}

func one(env *contracts.HTTPEnvelope, err error) (Commerce, error) {
	data, err := gateway.Expect(env, err)
	if err != nil {
		return Commerce{}, err
	}
	obj, err := gateway.Object(data)
	if err != nil {
		return Commerce{}, err
	}
	return toCommerce(obj)
}

func toCommerce(obj gjson.Result) (Commerce, error) {
	createdAt, err := gateway.FormatDate(obj, "createdAt")
	if err != nil {
		return Commerce{}, err
	}
	updatedAt, err := gateway.FormatOptionalDate(obj, "updatedAt")
	if err != nil {
		return Commerce{}, err
	}
	return Commerce{
		ID:               obj.Get("id").String(),
		Name:             obj.Get("name").String(),
		Category:         obj.Get("category").String(),
		Address:          obj.Get("address").String(),
		Phone:            obj.Get("phone").String(),
		Email:            obj.Get("email").String(),
		Status:           obj.Get("status").Bool(),
		Logo:             obj.Get("logo").String(),
		UsersProDiscount: gateway.OptionalFloat(obj.Get("usersProDisccount")),
		UsersDiscount:    gateway.OptionalFloat(obj.Get("usersDisccount")),
		URL:              obj.Get("url").String(),
		Detail:           obj.Get("detail").String(),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}
