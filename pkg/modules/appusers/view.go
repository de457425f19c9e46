package appusers

import (
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

var header = []string{"ID", "NAME", "EMAIL", "PHONE", "SUBSCRIPTION", "PLAN", "RENEWS", "ACTIVE", "CREATED"}

type view struct {
	*cli.View
}

func newView(ctx contracts.CliContext) *view {
	return &view{View: cli.NewView(ctx.Output())}
}

func row(u AppUser) []string {
	return []string{
		u.ID, u.Name, u.Email, u.Phone, u.Subscription, u.SubscriptionPlan,
		u.SubscriptionEndDate, strconv.FormatBool(u.Status), u.CreatedAt,
	}
}

func (v *view) GetUsersSuccess(users []AppUser) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, row(u))
	}
	v.Table(header, rows)
}

func (v *view) CreateUserSuccess(user AppUser) {
	v.Printf("Created user %s\n", user.ID)
	v.Table(header, [][]string{row(user)})
}

func (v *view) UpdateUserSuccess(user AppUser) {
	v.Printf("Updated user %s\n", user.ID)
	v.Table(header, [][]string{row(user)})
}

func (v *view) DeleteUserSuccess(bool) {
	v.Printf("User deleted\n")
}

func (v *view) GetUsersError(err error)   { v.Fail(err) }
func (v *view) UpdateUserError(err error) { v.Fail(err) }
func (v *view) CreateUserError(err error) { v.Fail(err) }
func (v *view) DeleteUserError(err error) { v.Fail(err) }
