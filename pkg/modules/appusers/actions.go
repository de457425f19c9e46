package appusers

import "context"

type (
	Lister interface {
		List(ctx context.Context) ([]AppUser, error)
	}
	Creator interface {
		Create(ctx context.Context, in Input) (AppUser, error)
	}
	Editor interface {
		Edit(ctx context.Context, id string, in Input) (AppUser, error)
	}
	Deleter interface {
		Delete(ctx context.Context, id string) (bool, error)
	}
)

type GetAppUsersAction struct{ gateway Lister }

func NewGetAppUsersAction(g Lister) *GetAppUsersAction {
	return &GetAppUsersAction{gateway: g}
}

func (a *GetAppUsersAction) Execute(ctx context.Context) ([]AppUser, error) {
	return a.gateway.List(ctx)
}

type CreateAppUserAction struct{ gateway Creator }

func NewCreateAppUserAction(g Creator) *CreateAppUserAction {
	return &CreateAppUserAction{gateway: g}
}

func (a *CreateAppUserAction) Execute(ctx context.Context, in Input) (AppUser, error) {
	return a.gateway.Create(ctx, in)
}

type EditAppUserAction struct{ gateway Editor }

func NewEditAppUserAction(g Editor) *EditAppUserAction {
	return &EditAppUserAction{gateway: g}
}

func (a *EditAppUserAction) Execute(ctx context.Context, id string, in Input) (AppUser, error) {
	return a.gateway.Edit(ctx, id, in)
}

type DeleteAppUserAction struct{ gateway Deleter }

func NewDeleteAppUserAction(g Deleter) *DeleteAppUserAction {
	return &DeleteAppUserAction{gateway: g}
}

func (a *DeleteAppUserAction) Execute(ctx context.Context, id string) (bool, error) {
	return a.gateway.Delete(ctx, id)
}
