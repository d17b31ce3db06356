package voiceHandler

import (
	voiceService "PharmaPOS/internal/api/voice/service"
	"PharmaPOS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	voice := srv.Group("/voice")

	voice.Use("/:terminalId/stream", wsMiddleware)
	voice.Get("/:terminalId/stream", websocket.New(h.handleStream))

	voice.Post("/:terminalId/enable", h.EnableVoice)
	voice.Post("/:terminalId/disable", h.DisableVoice)
	voice.Post("/:terminalId/listen", h.Listen)
	voice.Post("/:terminalId/utterance", h.ProcessUtterance)
	voice.Get("/:terminalId/status", h.Status)
	voice.Get("/:terminalId/log", h.CommandLog)
}
