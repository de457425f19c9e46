package notifications

import "context"

type (
	Lister interface {
		List(ctx context.Context) ([]Notification, error)
	}
	Creator interface {
		Create(ctx context.Context, in Input) (Notification, error)
	}
	Updater interface {
		Update(ctx context.Context, id string, in Input) (Notification, error)
	}
	Deleter interface {
		Delete(ctx context.Context, id string) error
	}
)

type GetNotificationAction struct{ gateway Lister }

func NewGetNotificationAction(g Lister) *GetNotificationAction {
	return &GetNotificationAction{gateway: g}
}

func (a *GetNotificationAction) Execute(ctx context.Context) ([]Notification, error) {
	return a.gateway.List(ctx)
}

type CreateNotificationAction struct{ gateway Creator }

func NewCreateNotificationAction(g Creator) *CreateNotificationAction {
	return &CreateNotificationAction{gateway: g}
}

func (a *CreateNotificationAction) Execute(ctx context.Context, in Input) (Notification, error) {
	return a.gateway.Create(ctx, in)
}

type UpdateNotificationAction struct{ gateway Updater }

func NewUpdateNotificationAction(g Updater) *UpdateNotificationAction {
	return &UpdateNotificationAction{gateway: g}
}

func (a *UpdateNotificationAction) Execute(ctx context.Context, id string, in Input) (Notification, error) {
	return a.gateway.Update(ctx, id, in)
}

type DeleteNotificationAction struct{ gateway Deleter }

func NewDeleteNotificationAction(g Deleter) *DeleteNotificationAction {
	return &DeleteNotificationAction{gateway: g}
}

func (a *DeleteNotificationAction) Execute(ctx context.Context, id string) error {
	return a.gateway.Delete(ctx, id)
}
