package notifications

import "context"

type Views interface {
	GetNotificationsSuccess(notifications []Notification)
	GetNotificationsError(err error)
	CreateNotificationSuccess(notification Notification)
	CreateNotificationError(err error)
	UpdateNotificationSuccess(notification Notification)
	UpdateNotificationError(err error)
	DeleteNotificationSuccess()
	DeleteNotificationError(err error)
}

type Actions struct {
	Get    *GetNotificationAction
	Create *CreateNotificationAction
	Update *UpdateNotificationAction
	Delete *DeleteNotificationAction
}

type Presenter struct {
	actions Actions
	views   Views
}

func NewPresenter(actions Actions, views Views) *Presenter {
	return &Presenter{actions: actions, views: views}
}

func (p *Presenter) GetNotifications(ctx context.Context) {
	notifications, err := p.actions.Get.Execute(ctx)
	if err != nil {
		p.views.GetNotificationsError(err)
		return
	}
	p.views.GetNotificationsSuccess(notifications)
}

func (p *Presenter) CreateNotification(ctx context.Context, in Input) {
	notification, err := p.actions.Create.Execute(ctx, in)
	if err != nil {
		p.views.CreateNotificationError(err)
		return
	}
	p.views.CreateNotificationSuccess(notification)
}

func (p *Presenter) UpdateNotification(ctx context.Context, id string, in Input) {
	notification, err := p.actions.Update.Execute(ctx, id, in)
	if err != nil {
		p.views.UpdateNotificationError(err)
		return
	}
	p.views.UpdateNotificationSuccess(notification)
}

func (p *Presenter) DeleteNotification(ctx context.Context, id string) {
	if err := p.actions.Delete.Execute(ctx, id); err != nil {
		p.views.DeleteNotificationError(err)
		return
	}
	p.views.DeleteNotificationSuccess()
}
