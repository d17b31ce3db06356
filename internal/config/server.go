package config

import (
	"PharmaPOS/database/postgres"
	catalogHandler "PharmaPOS/internal/api/catalog/handler"
	catalogRepository "PharmaPOS/internal/api/catalog/repository"
	catalogService "PharmaPOS/internal/api/catalog/service"
	customerHandler "PharmaPOS/internal/api/customer/handler"
	customerRepository "PharmaPOS/internal/api/customer/repository"
	customerService "PharmaPOS/internal/api/customer/service"
	posHandler "PharmaPOS/internal/api/pos/handler"
	posRepository "PharmaPOS/internal/api/pos/repository"
	posService "PharmaPOS/internal/api/pos/service"
	prescriptionHandler "PharmaPOS/internal/api/prescription/handler"
	prescriptionRepository "PharmaPOS/internal/api/prescription/repository"
	prescriptionService "PharmaPOS/internal/api/prescription/service"
	reportHandler "PharmaPOS/internal/api/report/handler"
	reportRepository "PharmaPOS/internal/api/report/repository"
	reportService "PharmaPOS/internal/api/report/service"
	voiceHandler "PharmaPOS/internal/api/voice/handler"
	voiceService "PharmaPOS/internal/api/voice/service"
	"PharmaPOS/internal/middleware"
	"PharmaPOS/pkg/doku"
	"PharmaPOS/pkg/escpos"
	"PharmaPOS/pkg/gemini"
	"PharmaPOS/pkg/nlp"
	"PharmaPOS/pkg/redis"
	"PharmaPOS/pkg/smtp"
	"PharmaPOS/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	smtpMailer   smtp.ItfSmtp
	geminiClient gemini.IGemini
	printer      escpos.IPrinter
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithPrinter() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before printer")
		}
		s.printer = escpos.NewPrinter(s.log, escpos.NewSerialOpener(), os.Getenv("PRINTER_DEVICE"))
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Catalog
	catalogRepo := catalogRepository.New(s.db, s.log)
	catalogServices := catalogService.NewCatalogService(s.log, catalogRepo, s.redisServer, s.utils)
	catalogHandlers := catalogHandler.New(s.log, s.validator, s.middleware, catalogServices)

	// Customers
	customerRepo := customerRepository.New(s.db, s.log)
	customerServices := customerService.NewCustomerService(s.log, customerRepo, s.utils)
	customerHandlers := customerHandler.New(s.log, s.validator, s.middleware, customerServices)

	// Prescriptions
	prescriptionRepo := prescriptionRepository.New(s.db, s.log)
	prescriptionServices := prescriptionService.NewPrescriptionService(s.log, prescriptionRepo, catalogServices, s.utils)
	prescriptionHandlers := prescriptionHandler.New(s.log, s.validator, s.middleware, prescriptionServices)

	// POS terminals and payments
	dokuClient := doku.NewDokuService(s.log)
	dokuClient.Init()
	posRepo := posRepository.New(s.db, s.log)
	posServices := posService.NewPosService(s.log, posRepo, catalogServices, customerServices, dokuClient, s.printer, s.smtpMailer, s.utils)
	posHandlers := posHandler.New(s.log, s.validator, s.middleware, posServices)

	// Reports
	reportRepo := reportRepository.New(s.db, s.log)
	reportServices := reportService.NewReportService(s.log, reportRepo)
	reportHandlers := reportHandler.New(s.log, s.validator, s.middleware, reportServices)

	// Voice control
	normalizer := nlp.NewNormalizer(s.log, s.geminiClient)
	voiceServices := voiceService.NewVoiceService(s.log, posServices, normalizer, nil)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, catalogHandlers, customerHandlers, prescriptionHandlers, posHandlers, reportHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
