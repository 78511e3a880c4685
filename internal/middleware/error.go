package middleware

import (
	"errors"

	"github.com/Behyna/pix-checkout/internal/api/contract"
	"github.com/Behyna/pix-checkout/internal/constants"
	"github.com/Behyna/pix-checkout/internal/service"
	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *misticpay.APIError
		if errors.As(err, &apiErr) {
			return handleGatewayError(c, apiErr)
		}

		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.ErrorResponse{
				Code:    constants.ErrCodeInternalError,
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled request error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ErrorResponse{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
			Details: err.Error(),
		})
	}
}

// handleGatewayError relays the gateway's own status and body.
func handleGatewayError(c *fiber.Ctx, err *misticpay.APIError) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(err.StatusCode).Send(err.Body)
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	return c.Status(constants.GetHTTPStatus(err.Code)).JSON(contract.ErrorResponse{
		Code:    err.Code,
		Message: constants.GetErrorMessage(err.Code),
		Details: err.Error(),
	})
}
