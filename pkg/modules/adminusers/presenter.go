package adminusers

import "context"

type Views interface {
	GetUsersSuccess(users []AdminUser)
	GetUsersError(err error)
	UpdateUserSuccess(user AdminUser)
	UpdateUserError(err error)
	CreateUserSuccess(user AdminUser)
	CreateUserError(err error)
	DeleteUserSuccess(deleted bool)
	DeleteUserError(err error)
}

type Actions struct {
	Get    *GetAdminUsersAction
	Edit   *EditAdminUserAction
	Create *CreateAdminUserAction
	Delete *DeleteAdminUserAction
}

type Presenter struct {
	actions Actions
	views   Views
}

func NewPresenter(actions Actions, views Views) *Presenter {
	return &Presenter{actions: actions, views: views}
}

func (p *Presenter) GetAdminUsers(ctx context.Context) {
	users, err := p.actions.Get.Execute(ctx)
	if err != nil {
		p.views.GetUsersError(err)
		return
	}
	p.views.GetUsersSuccess(users)
}

func (p *Presenter) UpdateAdminUser(ctx context.Context, id string, in Input) {
	user, err := p.actions.Edit.Execute(ctx, id, in)
	if err != nil {
		p.views.UpdateUserError(err)
		return
	}
	p.views.UpdateUserSuccess(user)
}

func (p *Presenter) CreateAdminUser(ctx context.Context, in Input) {
	user, err := p.actions.Create.Execute(ctx, in)
	if err != nil {
		p.views.CreateUserError(err)
		return
	}
	p.views.CreateUserSuccess(user)
}

func (p *Presenter) DeleteAdminUser(ctx context.Context, id string) {
	deleted, err := p.actions.Delete.Execute(ctx, id)
	if err != nil {
		p.views.DeleteUserError(err)
		return
	}
	p.views.DeleteUserSuccess(deleted)
}
