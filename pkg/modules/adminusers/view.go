package adminusers

import (
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/modules/dashboard"
)

var header = []string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE", "CREATED", "UPDATED"}

type view struct {
	*cli.View
}

func newView(ctx contracts.CliContext) *view {
	return &view{View: cli.NewView(ctx.Output())}
}

func row(u AdminUser) []string {
	return []string{u.ID, u.Name, u.Email, u.Role, strconv.FormatBool(u.Status), u.CreatedAt, u.UpdatedAt}
}

func (v *view) GetUsersSuccess(users []AdminUser) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, row(u))
	}
	v.Table(header, rows)
}

func (v *view) CreateUserSuccess(user AdminUser) {
	v.Printf("Created account %s\n", user.ID)
	v.Table(header, [][]string{row(user)})
}

func (v *view) UpdateUserSuccess(user AdminUser) {
	v.Printf("Updated account %s\n", user.ID)
	v.Table(header, [][]string{row(user)})
}

func (v *view) DeleteUserSuccess(deleted bool) {
	if deleted {
		v.Printf("Account deleted\n")
	}
}

func (v *view) GetMetrics(m dashboard.Metrics) {
	v.Table([]string{"METRIC", "VALUE"}, dashboard.MetricRows(m))
}

func (v *view) GetUsersError(err error)   { v.Fail(err) }
func (v *view) UpdateUserError(err error) { v.Fail(err) }
func (v *view) CreateUserError(err error) { v.Fail(err) }
func (v *view) DeleteUserError(err error) { v.Fail(err) }
func (v *view) GetMetricsError(err error) { v.Fail(err) }
