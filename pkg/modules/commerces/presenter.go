package commerces

import "context"

type Views interface {
	GetCommercesSuccess(commerces []Commerce)
	GetCommercesError(err error)
	CreateCommerceSuccess(commerce Commerce)
	CreateCommerceError(err error)
	UpdateCommerceSuccess(commerce Commerce)
	UpdateCommerceError(err error)
	DeleteCommerceSuccess()
	DeleteCommerceError(err error)
}

type Actions struct {
	Get    *GetCommerceAction
	Create *CreateCommerceAction
	Update *UpdateCommerceAction
	Delete *DeleteCommerceAction
}

type Presenter struct {
	actions Actions
	views   Views
}

func NewPresenter(actions Actions, views Views) *Presenter {
	return &Presenter{actions: actions, views: views}
}

func (p *Presenter) GetCommerces(ctx context.Context) {
	commerces, err := p.actions.Get.Execute(ctx)
	if err != nil {
		p.views.GetCommercesError(err)
		return
	}
	p.views.GetCommercesSuccess(commerces)
}

func (p *Presenter) CreateCommerce(ctx context.Context, in Input) {
	commerce, err := p.actions.Create.Execute(ctx, in)
	if err != nil {
		p.views.CreateCommerceError(err)
		return
	}
	p.views.CreateCommerceSuccess(commerce)
}

func (p *Presenter) UpdateCommerce(ctx context.Context, id string, in Input) {
	commerce, err := p.actions.Update.Execute(ctx, id, in)
	if err != nil {
		p.views.UpdateCommerceError(err)
		return
	}
	p.views.UpdateCommerceSuccess(commerce)
}

func (p *Presenter) DeleteCommerce(ctx context.Context, id string) {
	if err := p.actions.Delete.Execute(ctx, id); err != nil {
		p.views.DeleteCommerceError(err)
		return
	}
	p.views.DeleteCommerceSuccess()
}
