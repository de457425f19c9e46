package notifications

import (
	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

var header = []string{"ID", "TITLE", "AUDIENCE", "SCHEDULED", "CREATED", "BY", "UPDATED", "BY"}

type view struct {
	*cli.View
}

func newView(ctx contracts.CliContext) *view {
	return &view{View: cli.NewView(ctx.Output())}
}

func row(n Notification) []string {
	return []string{n.ID, n.Title, n.Audience, n.ScheduledAt, n.CreatedAt, n.CreatedBy, n.UpdatedAt, n.UpdatedBy}
}

func (v *view) GetNotificationsSuccess(list []Notification) {
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, row(n))
	}
	v.Table(header, rows)
}

func (v *view) CreateNotificationSuccess(n Notification) {
	v.Printf("Created notification %s\n", n.ID)
	v.Table(header, [][]string{row(n)})
}

func (v *view) UpdateNotificationSuccess(n Notification) {
	v.Printf("Updated notification %s\n", n.ID)
	v.Table(header, [][]string{row(n)})
}

func (v *view) DeleteNotificationSuccess() {
	v.Printf("Notification deleted\n")
}

func (v *view) GetNotificationsError(err error)   { v.Fail(err) }
func (v *view) CreateNotificationError(err error) { v.Fail(err) }
func (v *view) UpdateNotificationError(err error) { v.Fail(err) }
func (v *view) DeleteNotificationError(err error) { v.Fail(err) }
