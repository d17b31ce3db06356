package posService

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	catalogService "PharmaPOS/internal/api/catalog/service"
	customerService "PharmaPOS/internal/api/customer/service"
	"PharmaPOS/internal/api/pos"
	posRepository "PharmaPOS/internal/api/pos/repository"
	"PharmaPOS/internal/entity"
	"PharmaPOS/pkg/doku"
	"PharmaPOS/pkg/escpos"
	"PharmaPOS/pkg/smtp"
	"PharmaPOS/pkg/utils"
)

type IPosService interface {
	Terminal(terminalID string) *pos.Terminal
	Search(ctx context.Context, terminalID, term string) ([]entity.Product, error)
	SetQuantitySelection(terminalID, productID string, quantity int)
	AddToCart(ctx context.Context, terminalID, productID string, quantity int) error
	RemoveFromCart(terminalID, productID string) error
	SetCartQuantity(terminalID, productID string, quantity int) error
	ApplyDiscount(terminalID, productID, kind string, value float64) error
	AdjustPrice(terminalID, productID string, price float64) error
	ClearCart(terminalID string)
	OpenCheckout(terminalID string) error
	CloseCheckout(terminalID string)
	Checkout(ctx context.Context, terminalID string, req pos.CheckoutRequest) (pos.CheckoutResponse, error)
	CompleteSale(ctx context.Context, saleID string) error
	ProcessPaymentCallback(ctx context.Context, req pos.PaymentCallbackRequest) error
	CheckPaymentStatus(ctx context.Context, saleID string) (pos.PaymentStatusResponse, error)
	GetSaleByID(ctx context.Context, id string) (entity.Sale, error)
	GetSales(ctx context.Context, from, to string) ([]entity.Sale, error)
}

type posService struct {
	log             *logrus.Logger
	posRepository   posRepository.Repository
	catalogService  catalogService.ICatalogService
	customerService customerService.ICustomerService
	doku            doku.IDokuService
	printer         escpos.IPrinter
	smtp            smtp.ItfSmtp
	utils           utils.IUtils

	mu        sync.Mutex
	terminals map[string]*pos.Terminal
}

func NewPosService(
	log *logrus.Logger,
	pr posRepository.Repository,
	cs catalogService.ICatalogService,
	cust customerService.ICustomerService,
	dokuService doku.IDokuService,
	printer escpos.IPrinter,
	smtpService smtp.ItfSmtp,
	utils utils.IUtils,
) IPosService {
	return &posService{
		log:             log,
		posRepository:   pr,
		catalogService:  cs,
		customerService: cust,
		doku:            dokuService,
		printer:         printer,
		smtp:            smtpService,
		utils:           utils,
		terminals:       make(map[string]*pos.Terminal),
	}
}

// Terminal returns the till state for an ID, creating it on first use.
func (s *posService) Terminal(terminalID string) *pos.Terminal {
	s.mu.Lock()
	defer s.mu.Unlock()

	term, ok := s.terminals[terminalID]
	if !ok {
		term = pos.NewTerminal(terminalID)
		s.terminals[terminalID] = term
	}
	return term
}
