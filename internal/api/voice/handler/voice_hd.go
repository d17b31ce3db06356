package voiceHandler

import (
	"PharmaPOS/internal/api/voice"
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/handlerUtil"
	"PharmaPOS/pkg/log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *VoiceHandler) EnableVoice(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req voice.EnableVoiceRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"terminal_id": terminalID,
		"continuous":  req.Continuous,
	}).Debug("Processing enable voice request")

	if err := h.voiceService.EnableVoice(terminalID, req.Continuous); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "enable_voice")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.Status(terminalID))
}

func (h *VoiceHandler) DisableVoice(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	if err := h.voiceService.DisableVoice(terminalID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "disable_voice")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.Status(terminalID))
}

func (h *VoiceHandler) Listen(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	if err := h.voiceService.Listen(terminalID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "listen")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.Status(terminalID))
}

// ProcessUtterance feeds one transcript through the command pipeline
// without a recognition stream. Used by integration checks and by
// terminals that only have text input.
func (h *VoiceHandler) ProcessUtterance(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req voice.UtteranceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"terminal_id": terminalID,
	}).Debug("Processing utterance request")

	feedback := h.voiceService.ProcessUtterance(c, terminalID, req.Text)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, feedback)
	}
}

func (h *VoiceHandler) Status(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.Status(terminalID))
}

func (h *VoiceHandler) CommandLog(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	limit, err := strconv.Atoi(ctx.Query("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.CommandLog(terminalID, limit))
}
