package adminusers

import "context"

type (
	Lister interface {
		List(ctx context.Context) ([]AdminUser, error)
	}
	Creator interface {
		Create(ctx context.Context, in Input) (AdminUser, error)
	}
	Editor interface {
		Edit(ctx context.Context, id string, in Input) (AdminUser, error)
	}
	Deleter interface {
		Delete(ctx context.Context, id string) (bool, error)
	}
)

type GetAdminUsersAction struct{ gateway Lister }

func NewGetAdminUsersAction(g Lister) *GetAdminUsersAction {
	return &GetAdminUsersAction{gateway: g}
}

func (a *GetAdminUsersAction) Execute(ctx context.Context) ([]AdminUser, error) {
	return a.gateway.List(ctx)
}

type CreateAdminUserAction struct{ gateway Creator }

func NewCreateAdminUserAction(g Creator) *CreateAdminUserAction {
	return &CreateAdminUserAction{gateway: g}
}

func (a *CreateAdminUserAction) Execute(ctx context.Context, in Input) (AdminUser, error) {
	return a.gateway.Create(ctx, in)
}

type EditAdminUserAction struct{ gateway Editor }

func NewEditAdminUserAction(g Editor) *EditAdminUserAction {
	return &EditAdminUserAction{gateway: g}
}

func (a *EditAdminUserAction) Execute(ctx context.Context, id string, in Input) (AdminUser, error) {
	return a.gateway.Edit(ctx, id, in)
}

type DeleteAdminUserAction struct{ gateway Deleter }

func NewDeleteAdminUserAction(g Deleter) *DeleteAdminUserAction {
	return &DeleteAdminUserAction{gateway: g}
}

func (a *DeleteAdminUserAction) Execute(ctx context.Context, id string) (bool, error) {
	return a.gateway.Delete(ctx, id)
}
