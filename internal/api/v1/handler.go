package v1

import (
	"github.com/Behyna/pix-checkout/internal/api/contract"
	"github.com/Behyna/pix-checkout/internal/constants"
	"github.com/Behyna/pix-checkout/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger  *zap.Logger
	service service.TransactionService
}

func NewHandler(logger *zap.Logger, service service.TransactionService) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// CreateTransaction relays the gateway body untouched with status 200.
// Failures are rendered by the app error handler.
func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	var request CreateTransactionRequest

	// a missing or non-JSON body means "use the defaults"
	if len(c.Body()) > 0 && c.Is("json") {
		if err := c.BodyParser(&request); err != nil {
			h.logger.Warn("Failed to parse body",
				zap.Error(err),
				zap.String("body", string(c.Body())))
			return c.Status(fiber.StatusBadRequest).JSON(contract.ErrorResponse{
				Code:    constants.ErrCodeInvalidRequestBody,
				Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			})
		}
	}

	cmd := service.CreateTransactionCommand{
		PayerName:     request.PayerName,
		PayerDocument: request.PayerDocument,
	}

	result, err := h.service.CreateTransaction(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(result.Body)
}
