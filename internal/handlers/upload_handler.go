package handlers

import (
	"context"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PosterUploader presigns direct uploads to the poster bucket.
type PosterUploader interface {
	PresignUpload(ctx context.Context, filename, contentType string) (*services.PresignedUpload, error)
}

type PresignQuery struct {
	Filename    string `query:"filename" validate:"required,notblank,max=255"`
	ContentType string `query:"content_type" validate:"omitempty,max=100"`
}

type UploadHandler struct {
	uploader  PosterUploader
	validator *Validator
	logger    *logrus.Logger
}

// NewUploadHandler accepts a nil uploader when object storage is not configured.
func NewUploadHandler(uploader PosterUploader, validator *Validator, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		uploader:  uploader,
		validator: validator,
		logger:    logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a poster upload
// @Description Returns a URL to PUT the image to and the public URL to store as the movie's poster_url
// @Tags uploads
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Original file name"
// @Param content_type query string false "Image content type" default(image/jpeg)
// @Success 200 {object} utils.StandardResponse{data=services.PresignedUpload}
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Failure 501 {object} utils.StandardResponse "Object storage not configured"
// @Router /uploads/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	if h.uploader == nil {
		return respondError(c, h.logger, errs.Errorf(errs.ENOTIMPLEMENTED, "Object storage is not configured."), "")
	}

	var query PresignQuery
	if err := h.validator.bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err, "Failed to generate presigned URL.")
	}
	if query.ContentType == "" {
		query.ContentType = "image/jpeg"
	}

	upload, err := h.uploader.PresignUpload(c.UserContext(), query.Filename, query.ContentType)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate presigned URL.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully.", upload)
}
