package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/interfaces/http/dto"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *gin.Context)
		expected string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expected: "ctx-request-id",
		},
		{
			name: "from header",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expected: "header-request-id",
		},
		{
			name: "context takes precedence",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set(RequestIDKey, "header-id")
			},
			expected: "ctx-id",
		},
		{
			name:     "missing",
			setup:    func(c *gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext()
			tt.setup(c)
			assert.Equal(t, tt.expected, getRequestID(c))
		})
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := newTestContext()
	c.Set(middleware.JWTUserIDKey, "2f9a7b7e-14a2-4f6a-9c1e-0d5b1c0a9f11")

	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, "2f9a7b7e-14a2-4f6a-9c1e-0d5b1c0a9f11", id.String())
}

func TestGetUserID_Missing(t *testing.T) {
	c, _ := newTestContext()

	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestGetTenantID_Missing(t *testing.T) {
	c, _ := newTestContext()

	_, err := getTenantID(c)
	assert.Error(t, err)
}

func TestBaseHandlerSuccess(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.Success(c, gin.H{"name": "test"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.Created(c, gin.H{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerErrorWithRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set(RequestIDKey, "test-request-123")
	h := &BaseHandler{}

	h.NotFound(c, "Room not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "test-request-123", resp.Error.RequestID)
}

func TestBaseHandlerValidationError(t *testing.T) {
	c, w := newTestContext()
	c.Set(RequestIDKey, "val-req-456")
	h := &BaseHandler{}

	details := []dto.ValidationDetail{
		{Field: "check_in", Message: "required"},
	}
	h.ValidationError(c, details)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "val-req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}

func TestBaseHandlerHandleErrorDomainError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
		wantCode   string
	}{
		{"not found", "ROOM_NOT_FOUND", http.StatusNotFound, dto.ErrCodeNotFound},
		{"invalid input", "INVALID_GUEST_NAME", http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"last admin", "LAST_ADMIN", http.StatusUnprocessableEntity, dto.ErrCodeLastAdmin},
		{"room in use", "ROOM_IN_USE", http.StatusUnprocessableEntity, dto.ErrCodeRoomInUse},
		{"credentials", "INVALID_CREDENTIALS", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h := &BaseHandler{}

			h.HandleError(c, shared.NewDomainError(tt.code, "message"))

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleDomainErrorWithRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set(RequestIDKey, "domain-err-req")
	h := &BaseHandler{}

	h.HandleDomainError(c, shared.NewDomainError("NOT_FOUND", "missing"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "domain-err-req", resp.Error.RequestID)
}

func TestBaseHandlerHandleErrorUnknownError(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.HandleError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
}

func TestBaseHandlerHandleErrorNil(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.HandleError(c, nil)

	// Nothing written
	assert.Empty(t, w.Body.String())
}
