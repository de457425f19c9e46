package commerces

import "context"

type (
	Lister interface {
		List(ctx context.Context) ([]Commerce, error)
	}
	Creator interface {
		Create(ctx context.Context, in Input) (Commerce, error)
	}
	Updater interface {
		Update(ctx context.Context, id string, in Input) (Commerce, error)
	}
	Deleter interface {
		Delete(ctx context.Context, id string) error
	}
)

type GetCommerceAction struct{ gateway Lister }

func NewGetCommerceAction(g Lister) *GetCommerceAction {
	return &GetCommerceAction{gateway: g}
}

func (a *GetCommerceAction) Execute(ctx context.Context) ([]Commerce, error) {
	return a.gateway.List(ctx)
}

type CreateCommerceAction struct{ gateway Creator }

func NewCreateCommerceAction(g Creator) *CreateCommerceAction {
	return &CreateCommerceAction{gateway: g}
}

func (a *CreateCommerceAction) Execute(ctx context.Context, in Input) (Commerce, error) {
	return a.gateway.Create(ctx, in)
}

type UpdateCommerceAction struct{ gateway Updater }

func NewUpdateCommerceAction(g Updater) *UpdateCommerceAction {
	return &UpdateCommerceAction{gateway: g}
}

func (a *UpdateCommerceAction) Execute(ctx context.Context, id string, in Input) (Commerce, error) {
	return a.gateway.Update(ctx, id, in)
}

type DeleteCommerceAction struct{ gateway Deleter }

func NewDeleteCommerceAction(g Deleter) *DeleteCommerceAction {
	return &DeleteCommerceAction{gateway: g}
}

func (a *DeleteCommerceAction) Execute(ctx context.Context, id string) error {
	return a.gateway.Delete(ctx, id)
}
