package appusers

import "context"

type Views interface {
	GetUsersSuccess(users []AppUser)
	GetUsersError(err error)
	UpdateUserSuccess(user AppUser)
	UpdateUserError(err error)
	CreateUserSuccess(user AppUser)
	CreateUserError(err error)
	DeleteUserSuccess(deleted bool)
	DeleteUserError(err error)
}

type Actions struct {
	Get    *GetAppUsersAction
	Edit   *EditAppUserAction
	Create *CreateAppUserAction
	Delete *DeleteAppUserAction
}

type Presenter struct {
	actions Actions
	views   Views
}

func NewPresenter(actions Actions, views Views) *Presenter {
	return &Presenter{actions: actions, views: views}
}

func (p *Presenter) GetAppUsers(ctx context.Context) {
	users, err := p.actions.Get.Execute(ctx)
	if err != nil {
		p.views.GetUsersError(err)
		return
	}
	p.views.GetUsersSuccess(users)
}

func (p *Presenter) UpdateAppUser(ctx context.Context, id string, in Input) {
	user, err := p.actions.Edit.Execute(ctx, id, in)
	if err != nil {
		p.views.UpdateUserError(err)
		return
	}
	p.views.UpdateUserSuccess(user)
}

func (p *Presenter) CreateAppUser(ctx context.Context, in Input) {
	user, err := p.actions.Create.Execute(ctx, in)
	if err != nil {
		p.views.CreateUserError(err)
		return
	}
	p.views.CreateUserSuccess(user)
}

func (p *Presenter) DeleteAppUser(ctx context.Context, id string) {
	deleted, err := p.actions.Delete.Execute(ctx, id)
	if err != nil {
		p.views.DeleteUserError(err)
		return
	}
	p.views.DeleteUserSuccess(deleted)
}
