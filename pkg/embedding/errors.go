package embedding

import (
	"errors"
	"fmt"
)

// FailureReason classifies why the provider could not produce a vector.
type FailureReason string

const (
	ReasonNoFaceDetected   FailureReason = "NO_FACE_DETECTED"
	ReasonModelUnavailable FailureReason = "MODEL_UNAVAILABLE"
	ReasonDecodeFailed     FailureReason = "DECODE_FAILED"
)

// ProviderError is a soft failure: the upload that triggered the
// computation stays persisted, callers degrade to a diagnostic response.
type ProviderError struct {
	Reason  FailureReason
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider: %s: %s", e.Reason, e.Message)
}

func NewProviderError(reason FailureReason, message string) *ProviderError {
	return &ProviderError{Reason: reason, Message: message}
}

// AsProviderError unwraps err into a ProviderError if it is one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
