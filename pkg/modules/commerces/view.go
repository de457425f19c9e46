package commerces

import (
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

var header = []string{"ID", "NAME", "CATEGORY", "ADDRESS", "PRO %", "USERS %", "ACTIVE", "UPDATED"}

type view struct {
	*cli.View
}

func newView(ctx contracts.CliContext) *view {
	return &view{View: cli.NewView(ctx.Output())}
}

func discount(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func row(c Commerce) []string {
	updated := c.UpdatedAt
	if updated == "" {
		updated = c.CreatedAt
	}
	return []string{
		c.ID, c.Name, c.Category, c.Address, discount(c.UsersProDiscount),
		discount(c.UsersDiscount), strconv.FormatBool(c.Status), updated,
	}
}

func (v *view) GetCommercesSuccess(commerces []Commerce) {
	rows := make([][]string, 0, len(commerces))
	for _, c := range commerces {
		rows = append(rows, row(c))
	}
	v.Table(header, rows)
}

func (v *view) CreateCommerceSuccess(c Commerce) {
	v.Printf("Created merchant %s\n", c.ID)
	v.Table(header, [][]string{row(c)})
}

func (v *view) UpdateCommerceSuccess(c Commerce) {
	v.Printf("Updated merchant %s\n", c.ID)
	v.Table(header, [][]string{row(c)})
}

func (v *view) DeleteCommerceSuccess() {
	v.Printf("Merchant deleted\n")
}

func (v *view) GetCommercesError(err error)   { v.Fail(err) }
func (v *view) CreateCommerceError(err error) { v.Fail(err) }
func (v *view) UpdateCommerceError(err error) { v.Fail(err) }
func (v *view) DeleteCommerceError(err error) { v.Fail(err) }
