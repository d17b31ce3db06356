package voiceService

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/pos"
	"PharmaPOS/internal/api/voice"
	"PharmaPOS/internal/entity"
	"PharmaPOS/pkg/nlp"
)

type echoNormalizer struct{}

func (echoNormalizer) Normalize(_ context.Context, raw string) nlp.Result {
	return nlp.Result{Command: raw, Source: nlp.SourceLocal}
}

type fakeRecognizer struct {
	starts   int
	stops    int
	releases int
}

func (r *fakeRecognizer) Start() error { r.starts++; return nil }
func (r *fakeRecognizer) Stop()        { r.stops++ }
func (r *fakeRecognizer) Release()     { r.releases++ }

type stubPosService struct {
	terminals map[string]*pos.Terminal
	products  []entity.Product
}

func newStubPosService(products ...entity.Product) *stubPosService {
	return &stubPosService{
		terminals: make(map[string]*pos.Terminal),
		products:  products,
	}
}

func (s *stubPosService) Terminal(terminalID string) *pos.Terminal {
	term, ok := s.terminals[terminalID]
	if !ok {
		term = pos.NewTerminal(terminalID)
		s.terminals[terminalID] = term
	}
	return term
}

func (s *stubPosService) Search(_ context.Context, terminalID, term string) ([]entity.Product, error) {
	s.Terminal(terminalID).SetResults(s.products)
	return s.products, nil
}

func (s *stubPosService) SetQuantitySelection(terminalID, productID string, quantity int) {
	s.Terminal(terminalID).SetQuantitySelection(productID, quantity)
}

func (s *stubPosService) AddToCart(_ context.Context, terminalID, productID string, quantity int) error {
	for _, p := range s.products {
		if p.ID == productID {
			s.Terminal(terminalID).AddToCart(p, quantity)
			return nil
		}
	}
	return pos.ErrProductNotInCart
}

func (s *stubPosService) RemoveFromCart(terminalID, productID string) error {
	return s.Terminal(terminalID).RemoveFromCart(productID)
}

func (s *stubPosService) SetCartQuantity(terminalID, productID string, quantity int) error {
	return s.Terminal(terminalID).SetCartQuantity(productID, quantity)
}

func (s *stubPosService) ApplyDiscount(terminalID, productID, kind string, value float64) error {
	return s.Terminal(terminalID).ApplyDiscount(productID, kind, value)
}

func (s *stubPosService) AdjustPrice(terminalID, productID string, price float64) error {
	return s.Terminal(terminalID).AdjustPrice(productID, price)
}

func (s *stubPosService) ClearCart(terminalID string) {
	s.Terminal(terminalID).ClearCart()
}

func (s *stubPosService) OpenCheckout(terminalID string) error {
	return s.Terminal(terminalID).OpenCheckout()
}

func (s *stubPosService) CloseCheckout(terminalID string) {
	s.Terminal(terminalID).CloseCheckout()
}

func (s *stubPosService) Checkout(_ context.Context, _ string, _ pos.CheckoutRequest) (pos.CheckoutResponse, error) {
	return pos.CheckoutResponse{}, nil
}

func (s *stubPosService) CompleteSale(_ context.Context, _ string) error { return nil }

func (s *stubPosService) ProcessPaymentCallback(_ context.Context, _ pos.PaymentCallbackRequest) error {
	return nil
}

func (s *stubPosService) CheckPaymentStatus(_ context.Context, _ string) (pos.PaymentStatusResponse, error) {
	return pos.PaymentStatusResponse{}, nil
}

func (s *stubPosService) GetSaleByID(_ context.Context, _ string) (entity.Sale, error) {
	return entity.Sale{}, nil
}

func (s *stubPosService) GetSales(_ context.Context, _, _ string) ([]entity.Sale, error) {
	return nil, nil
}

func newTestService(ps *stubPosService) IVoiceService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewVoiceService(log, ps, echoNormalizer{}, nil)
}

func TestEnableWithoutSession(t *testing.T) {
	svc := newTestService(newStubPosService())

	if err := svc.EnableVoice("till-1", true); !errors.Is(err, voice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAttachAndEnable(t *testing.T) {
	svc := newTestService(newStubPosService())
	rec := &fakeRecognizer{}

	svc.AttachRecognizer("till-1", rec, nil)

	if err := svc.EnableVoice("till-1", true); err != nil {
		t.Fatalf("EnableVoice: %v", err)
	}
	if rec.starts != 1 {
		t.Fatalf("expected 1 start, got %d", rec.starts)
	}

	status := svc.Status("till-1")
	if !status.Enabled || !status.Listening {
		t.Fatalf("expected enabled listening status, got %+v", status)
	}
}

func TestReattachTerminatesOldSession(t *testing.T) {
	svc := newTestService(newStubPosService())
	old := &fakeRecognizer{}
	svc.AttachRecognizer("till-1", old, nil)

	svc.AttachRecognizer("till-1", &fakeRecognizer{}, nil)

	if old.releases != 1 {
		t.Fatalf("expected old recognizer released, got %d", old.releases)
	}
}

func TestProcessUtteranceSearchPopulatesResults(t *testing.T) {
	ps := newStubPosService(entity.Product{ID: "p1", Name: "Paracetamol", Price: 10, Stock: 5})
	svc := newTestService(ps)

	fb := svc.ProcessUtterance(context.Background(), "till-1", "search for paracetamol")
	if fb.Level != voice.FeedbackInfo {
		t.Fatalf("expected info feedback, got %+v", fb)
	}
	if got := len(ps.Terminal("till-1").Results()); got != 1 {
		t.Fatalf("expected 1 result on terminal, got %d", got)
	}
}

func TestProcessUtteranceAddsToCart(t *testing.T) {
	ps := newStubPosService(entity.Product{ID: "p1", Name: "Paracetamol", Price: 10, Stock: 5})
	svc := newTestService(ps)

	svc.ProcessUtterance(context.Background(), "till-1", "search for paracetamol")
	fb := svc.ProcessUtterance(context.Background(), "till-1", "add to cart")

	if fb.Level != voice.FeedbackInfo {
		t.Fatalf("expected info feedback, got %+v", fb)
	}
	if got := len(ps.Terminal("till-1").CartLines()); got != 1 {
		t.Fatalf("expected 1 cart line, got %d", got)
	}
}

func TestProcessUtteranceIsLogged(t *testing.T) {
	svc := newTestService(newStubPosService())

	svc.ProcessUtterance(context.Background(), "till-1", "clear cart")

	entries := svc.CommandLog("till-1", 10).Entries
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Raw != "clear cart" {
		t.Fatalf("unexpected raw utterance: %q", entries[0].Raw)
	}
}

func TestCloseCommandDisablesSession(t *testing.T) {
	svc := newTestService(newStubPosService())
	rec := &fakeRecognizer{}
	svc.AttachRecognizer("till-1", rec, nil)

	if err := svc.EnableVoice("till-1", true); err != nil {
		t.Fatalf("EnableVoice: %v", err)
	}

	svc.ProcessUtterance(context.Background(), "till-1", "close")

	if status := svc.Status("till-1"); status.Enabled {
		t.Fatalf("expected session disabled, got %+v", status)
	}
}

func TestCommandLogSurvivesReattach(t *testing.T) {
	svc := newTestService(newStubPosService())

	svc.AttachRecognizer("till-1", &fakeRecognizer{}, nil)
	svc.ProcessUtterance(context.Background(), "till-1", "clear cart")
	svc.ReleaseSession("till-1")
	svc.AttachRecognizer("till-1", &fakeRecognizer{}, nil)

	if entries := svc.CommandLog("till-1", 10).Entries; len(entries) != 1 {
		t.Fatalf("expected command log to survive reattach, got %d entries", len(entries))
	}
}
