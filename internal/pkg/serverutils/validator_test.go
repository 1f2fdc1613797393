package serverutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ExternalUserId string `validate:"required,max=100"`
	Type           string `validate:"required,oneof=PASSPORT NRIC OTHER"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateRequest(sampleRequest{ExternalUserId: "user-1", Type: "PASSPORT"})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateRequest(sampleRequest{Type: "NRIC"})
		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "INVALID_INPUT", appErr.Code)
		assert.Contains(t, appErr.Message, "required")
	})

	t.Run("oneof violation", func(t *testing.T) {
		err := ValidateRequest(sampleRequest{ExternalUserId: "user-1", Type: "VISA"})
		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Message, "oneof")
	})
}
