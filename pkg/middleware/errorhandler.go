package middleware

import (
	"errors"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

// ErrorResponse is the generic error body returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler renders any error escaping a handler as an {error, message}
// JSON body, using the status code carried by the error (500 when none).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal error."

	var fiberErr *fiber.Error
	if richErr, ok := richerrors.AsRichError(err); ok {
		if richErr.Code != 0 {
			code = richErr.Code
		}
		if richErr.ExternalMsg != "" {
			message = richErr.ExternalMsg
		}
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	logger := zerolog.Ctx(c.UserContext())
	if code >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Int("code", code).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("code", code).Msg("request rejected")
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   utils.StatusMessage(code),
		Message: message,
	})
}

// NotFoundHandler terminates the middleware chain for unmatched routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return richerrors.Error{
		Code:        fiber.StatusNotFound,
		ExternalMsg: "Not Found - " + c.OriginalURL(),
		Err:         errors.New("route not registered"),
	}
}
