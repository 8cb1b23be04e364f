package middleware

import (
	"errors"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/sirupsen/logrus"
)

// UnauthenticatedMessage is the fixed body message of every 401.
const UnauthenticatedMessage = "Unauthenticated."

type identityKey struct{}

// IdentityFrom returns the caller stored by RequireToken, or nil.
func IdentityFrom(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey{}).(*services.Identity)
	return identity
}

// RequireToken rejects requests without a valid "Authorization: Bearer"
// token before any handler runs.
func RequireToken(auth services.AuthService, logger *logrus.Logger) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(c *fiber.Ctx, token string) (bool, error) {
			identity, err := auth.Authenticate(c.UserContext(), token)
			if err != nil {
				return false, err
			}
			c.Locals(identityKey{}, identity)
			AuthEvents.WithLabelValues("success").Inc()
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err != nil && !errors.Is(err, keyauth.ErrMissingOrMalformedAPIKey) && !errs.Is(err, errs.EUNAUTHORIZED) {
				AuthEvents.WithLabelValues("error").Inc()
				logger.WithError(err).Error("Failed to authenticate request")
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to authenticate request.")
			}
			AuthEvents.WithLabelValues("rejected").Inc()
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, UnauthenticatedMessage)
		},
	})
}
