package handlers

import (
	"movie-catalog/internal/errs"
	"movie-catalog/internal/middleware"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth      services.AuthService
	validator *Validator
	logger    *logrus.Logger
}

func NewAuthHandler(auth services.AuthService, validator *Validator, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator,
		logger:    logger,
	}
}

// IssueToken godoc
// @Summary Issue an API token
// @Description Exchanges user credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body TokenRequest true "Credentials"
// @Success 201 {object} utils.StandardResponse{data=services.IssuedToken}
// @Failure 401 {object} utils.StandardResponse "Bad credentials"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := h.validator.bind(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to issue token.")
	}

	issued, err := h.auth.IssueToken(c.UserContext(), req.Email, req.Password, req.DeviceName)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to issue token.")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Token issued successfully.", issued)
}

// RevokeToken godoc
// @Summary Revoke the current API token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Router /auth/token [delete]
func (h *AuthHandler) RevokeToken(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return respondError(c, h.logger, errs.Errorf(errs.EUNAUTHORIZED, middleware.UnauthenticatedMessage), "")
	}

	if err := h.auth.RevokeToken(c.UserContext(), identity.TokenID); err != nil {
		return respondError(c, h.logger, err, "Failed to revoke token.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token revoked successfully.", nil)
}
