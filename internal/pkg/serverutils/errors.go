package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the single error shape crossing the service boundary.
// Storage/referential failures abort the operation; soft outcomes
// (provider failures, insufficient embeddings) never take this path and
// are reported inside success payloads instead.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewSessionNotFound() *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "SESSION_NOT_FOUND",
		Message: "Session not found",
	}
}

func NewInvalidInput(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: message,
	}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}
