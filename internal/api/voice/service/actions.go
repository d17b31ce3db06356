package voiceService

import (
	"golang.org/x/net/context"

	posService "PharmaPOS/internal/api/pos/service"
)

// terminalActions adapts the POS service to the dispatcher's action set
// for one terminal.
type terminalActions struct {
	pos        posService.IPosService
	terminalID string
	disable    func()
}

func (a *terminalActions) Search(ctx context.Context, term string) (int, error) {
	products, err := a.pos.Search(ctx, a.terminalID, term)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

func (a *terminalActions) AddToCart(ctx context.Context, productID string, quantity int) error {
	return a.pos.AddToCart(ctx, a.terminalID, productID, quantity)
}

func (a *terminalActions) RemoveFromCart(_ context.Context, productID string) error {
	return a.pos.RemoveFromCart(a.terminalID, productID)
}

func (a *terminalActions) ClearCart(_ context.Context) error {
	a.pos.ClearCart(a.terminalID)
	return nil
}

func (a *terminalActions) OpenCheckout(_ context.Context) error {
	return a.pos.OpenCheckout(a.terminalID)
}

func (a *terminalActions) CloseVoice(_ context.Context) {
	a.disable()
}
