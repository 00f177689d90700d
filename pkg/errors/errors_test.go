package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     ErrorCode
		expected int
	}{
		{"Validation", NewValidationError("empty name"), CodeValidationFailed, http.StatusBadRequest},
		{"ItemNotFound", NewItemNotFoundError("p1"), CodeItemNotFound, http.StatusNotFound},
		{"DuplicateItem", NewDuplicateItemError("p1"), CodeDuplicateItem, http.StatusConflict},
		{"ScanInFlight", NewScanInFlightError(), CodeScanInFlight, http.StatusConflict},
		{"Recognition", NewRecognitionError(nil), CodeRecognitionFailed, http.StatusBadGateway},
		{"Persistence", NewPersistenceError("save profile", nil), CodePersistenceFailed, http.StatusInternalServerError},
		{"ExternalService", NewExternalServiceError("gemini", nil), CodeExternalServiceError, http.StatusBadGateway},
		{"Internal", NewInternalError(""), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.expected, tt.err.StatusCode())
		})
	}
}

func TestDuplicateItemError(t *testing.T) {
	err := NewDuplicateItemError("p7")

	assert.Equal(t, http.StatusConflict, err.StatusCode())
	require.NotNil(t, err.Metadata)
	assert.Equal(t, "p7", err.Metadata["item_id"])
}

func TestWrap(t *testing.T) {
	t.Run("AppError_ShouldPassThrough", func(t *testing.T) {
		original := NewDuplicateItemError("p1")

		wrapped := Wrap(original, "failed to add pantry item")

		assert.Same(t, original, wrapped)
		assert.Equal(t, http.StatusConflict, wrapped.StatusCode())
	})

	t.Run("PlainError_ShouldBecomeInternal", func(t *testing.T) {
		cause := fmt.Errorf("disk full")

		wrapped := Wrap(cause, "failed to save")

		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.Equal(t, http.StatusInternalServerError, wrapped.StatusCode())
		assert.Equal(t, cause, wrapped.Unwrap())
	})

	t.Run("Nil_ShouldStayNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "nothing"))
	})
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeItemNotFound, GetCode(NewItemNotFoundError("p1")))
	assert.Equal(t, CodeInternal, GetCode(fmt.Errorf("plain")))
}
