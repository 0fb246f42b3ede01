package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
	"github.com/rentflow/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewNotFoundError("Payment record"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"validation", shared.NewValidationError("bad"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"invalid state", shared.NewInvalidStateError("paid"), http.StatusBadRequest, dto.ErrCodeInvalidState},
		{"already exists", shared.NewDomainError(shared.CodeAlreadyExists, "dup"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"wrapped", fmt.Errorf("service: %w", shared.NewNotFoundError("Room")), http.StatusNotFound, dto.ErrCodeNotFound},
		{"store unavailable", shared.NewStoreUnavailableError(errors.New("dial tcp")), http.StatusInternalServerError, dto.ErrCodeStoreUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDContextKey, "req-1")

			h := &BaseHandler{}
			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_OwnerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	t.Run("missing owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		_, ok := h.ownerID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("owner from claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(middleware.JWTOwnerIDKey, "550e8400-e29b-41d4-a716-446655440000")

		id, ok := h.ownerID(c)
		assert.True(t, ok)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})
}
