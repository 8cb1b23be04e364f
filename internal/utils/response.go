package utils

import "github.com/gofiber/fiber/v2"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string      `json:"status" example:"success"`
	Message string      `json:"message" example:"Movie retrieved successfully."`
	Data    interface{} `json:"data"`
}

// Envelope shapes an outcome into the wire format. Data is always present
// in the output and is null when nothing is returned.
func Envelope(success bool, message string, data interface{}) StandardResponse {
	status := StatusError
	if success {
		status = StatusSuccess
	}
	return StandardResponse{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(Envelope(true, message, data))
}

// ErrorResponse sends an error response with a null payload
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(Envelope(false, message, nil))
}

// ErrorWithDataResponse sends an error response with additional data, such as validation details
func ErrorWithDataResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(Envelope(false, message, data))
}
