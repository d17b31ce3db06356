package reportHandler

import (
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/handlerUtil"
	"PharmaPOS/pkg/log"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ReportHandler) GetProfitReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("from and to dates are required"), ctx.Path())
	}

	top, err := strconv.Atoi(ctx.Query("top", "5"))
	if err != nil || top < 1 {
		top = 5
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"from":       from,
		"to":         to,
	}).Debug("Processing profit report request")

	result, err := h.reportService.GetProfitReport(c, from, to, top)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_profit_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
