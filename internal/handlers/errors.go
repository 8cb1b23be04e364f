package handlers

import (
	"errors"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/utils"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// InvalidDataMessage heads every 422 response.
const InvalidDataMessage = "The given data was invalid."

var codeStatus = map[string]int{
	errs.EINVALID:        fiber.StatusUnprocessableEntity,
	errs.ENOTFOUND:       fiber.StatusNotFound,
	errs.EUNAUTHORIZED:   fiber.StatusUnauthorized,
	errs.ECONFLICT:       fiber.StatusConflict,
	errs.ENOTIMPLEMENTED: fiber.StatusNotImplemented,
}

// StatusFor maps an application error code to an HTTP status.
func StatusFor(err error) int {
	if status, ok := codeStatus[errs.ErrorCode(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as an envelope. Unclassified errors are logged,
// reported and answered with internalMessage so no detail leaks to the client.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, internalMessage string) error {
	var invalid ValidationErrors
	if errors.As(err, &invalid) {
		return utils.ErrorWithDataResponse(c, fiber.StatusUnprocessableEntity, InvalidDataMessage, invalid)
	}

	status := StatusFor(err)
	if status != fiber.StatusInternalServerError {
		return utils.ErrorResponse(c, status, errs.ErrorMessage(err))
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(internalMessage)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, internalMessage)
}
