package voice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"PharmaPOS/internal/entity"
)

type fakeActions struct {
	searchTerm  string
	searchCount int
	searchErr   error
	added       []addCall
	addErr      error
	removed     []string
	cleared     int
	checkouts   int
	closed      int
}

type addCall struct {
	productID string
	quantity  int
}

func (a *fakeActions) Search(_ context.Context, term string) (int, error) {
	a.searchTerm = term
	return a.searchCount, a.searchErr
}

func (a *fakeActions) AddToCart(_ context.Context, productID string, quantity int) error {
	if a.addErr != nil {
		return a.addErr
	}
	a.added = append(a.added, addCall{productID: productID, quantity: quantity})
	return nil
}

func (a *fakeActions) RemoveFromCart(_ context.Context, productID string) error {
	a.removed = append(a.removed, productID)
	return nil
}

func (a *fakeActions) ClearCart(_ context.Context) error {
	a.cleared++
	return nil
}

func (a *fakeActions) OpenCheckout(_ context.Context) error {
	a.checkouts++
	return nil
}

func (a *fakeActions) CloseVoice(_ context.Context) {
	a.closed++
}

func testDispatcher() *Dispatcher {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewDispatcher(log)
}

func products(names ...string) []entity.Product {
	out := make([]entity.Product, 0, len(names))
	for i, name := range names {
		out = append(out, entity.Product{ID: string(rune('a' + i)), Name: name})
	}
	return out
}

func TestDispatcherSearch(t *testing.T) {
	d := testDispatcher()

	acts := &fakeActions{searchCount: 3}
	fb := d.Execute(context.Background(), "search for paracetamol", Snapshot{}, acts)
	if acts.searchTerm != "paracetamol" {
		t.Fatalf("search term = %q, want paracetamol", acts.searchTerm)
	}
	if fb.Level != FeedbackInfo || !strings.Contains(fb.Message, "found 3") {
		t.Fatalf("unexpected feedback: %+v", fb)
	}

	acts = &fakeActions{searchCount: 0}
	fb = d.Execute(context.Background(), "search for unobtainium", Snapshot{}, acts)
	if fb.Level != FeedbackWarning {
		t.Fatalf("no results should warn, got %+v", fb)
	}

	acts = &fakeActions{searchErr: errors.New("db down")}
	fb = d.Execute(context.Background(), "search for aspirin", Snapshot{}, acts)
	if fb.Level != FeedbackError {
		t.Fatalf("search failure should report an error, got %+v", fb)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "search for", Snapshot{}, acts)
	if fb.Level != FeedbackInfo || acts.searchTerm != "" {
		t.Fatalf("empty term should prompt without searching, got %+v", fb)
	}
	if !strings.Contains(fb.Message, "nothing to search") {
		t.Fatalf("empty term message = %q", fb.Message)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "search", Snapshot{}, acts)
	if fb.Level != FeedbackInfo || acts.searchTerm != "" {
		t.Fatalf("bare search should prompt without searching, got %+v", fb)
	}
}

func TestDispatcherSelect(t *testing.T) {
	d := testDispatcher()
	snap := Snapshot{
		Results:    products("Paracetamol 500mg", "Ibuprofen 400mg"),
		Quantities: map[string]int{"b": 4},
	}

	acts := &fakeActions{}
	fb := d.Execute(context.Background(), "select 2", snap, acts)
	if fb.Level != FeedbackInfo {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if len(acts.added) != 1 || acts.added[0].productID != "b" || acts.added[0].quantity != 4 {
		t.Fatalf("select 2 added %+v", acts.added)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "select one", snap, acts)
	if fb.Level != FeedbackInfo || len(acts.added) != 1 || acts.added[0].productID != "a" {
		t.Fatalf("select one added %+v", acts.added)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "select 5", snap, acts)
	if fb.Level != FeedbackError || len(acts.added) != 0 {
		t.Fatalf("out of range selection should fail, got %+v", fb)
	}
}

func TestDispatcherAdd(t *testing.T) {
	d := testDispatcher()
	snap := Snapshot{Results: products("Paracetamol 500mg")}

	acts := &fakeActions{}
	fb := d.Execute(context.Background(), "add 3 to cart", snap, acts)
	if fb.Level != FeedbackInfo {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if len(acts.added) != 1 || acts.added[0].quantity != 3 {
		t.Fatalf("add 3 added %+v", acts.added)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "add to cart", snap, acts)
	if len(acts.added) != 1 || acts.added[0].quantity != 1 {
		t.Fatalf("plain add should default to one, got %+v", acts.added)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "add to cart", Snapshot{}, acts)
	if fb.Level != FeedbackError || len(acts.added) != 0 {
		t.Fatalf("add without search results should fail, got %+v", fb)
	}
}

func TestDispatcherRemove(t *testing.T) {
	d := testDispatcher()
	snap := Snapshot{CartLines: []entity.CartLine{
		{ProductID: "p1", Name: "Paracetamol 500mg"},
		{ProductID: "p2", Name: "Ibuprofen 400mg"},
	}}

	acts := &fakeActions{}
	fb := d.Execute(context.Background(), "remove ibuprofen from cart", snap, acts)
	if fb.Level != FeedbackInfo || len(acts.removed) != 1 || acts.removed[0] != "p2" {
		t.Fatalf("named removal got %+v / %+v", fb, acts.removed)
	}

	// No token matches a line name, fall back to the newest line.
	acts = &fakeActions{}
	d.Execute(context.Background(), "remove from cart", snap, acts)
	if len(acts.removed) != 1 || acts.removed[0] != "p2" {
		t.Fatalf("fallback removal got %+v", acts.removed)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "remove from cart", Snapshot{}, acts)
	if fb.Level != FeedbackError || len(acts.removed) != 0 {
		t.Fatalf("removal from empty cart should fail, got %+v", fb)
	}
}

func TestDispatcherClearAndCheckout(t *testing.T) {
	d := testDispatcher()
	full := Snapshot{CartLines: []entity.CartLine{{ProductID: "p1", Name: "Paracetamol"}}}

	acts := &fakeActions{}
	fb := d.Execute(context.Background(), "clear cart", full, acts)
	if fb.Level != FeedbackInfo || acts.cleared != 1 {
		t.Fatalf("clear got %+v cleared=%d", fb, acts.cleared)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "clear cart", Snapshot{}, acts)
	if acts.cleared != 0 || fb.Level != FeedbackInfo {
		t.Fatalf("clearing an empty cart should be a no-op, got %+v", fb)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "print bill", full, acts)
	if fb.Level != FeedbackInfo || acts.checkouts != 1 {
		t.Fatalf("checkout got %+v checkouts=%d", fb, acts.checkouts)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "print bill", Snapshot{}, acts)
	if fb.Level != FeedbackError || acts.checkouts != 0 {
		t.Fatalf("checkout with an empty cart should fail, got %+v", fb)
	}
}

func TestDispatcherCloseAndUnknown(t *testing.T) {
	d := testDispatcher()

	acts := &fakeActions{}
	fb := d.Execute(context.Background(), "close", Snapshot{}, acts)
	if fb.Level != FeedbackInfo || acts.closed != 1 {
		t.Fatalf("close got %+v closed=%d", fb, acts.closed)
	}

	acts = &fakeActions{}
	fb = d.Execute(context.Background(), "make me a sandwich", Snapshot{}, acts)
	if fb.Level != FeedbackWarning {
		t.Fatalf("unknown command should warn, got %+v", fb)
	}
}
