package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborstay/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type createBookingRequest struct {
		GuestName  string `json:"guest_name" binding:"required"`
		GuestEmail string `json:"guest_email" binding:"required,email"`
		GuestCount int    `json:"guest_count" binding:"required,min=1"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/bookings", func(c *gin.Context) {
		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	serve := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid input gets per-field details", func(t *testing.T) {
		w := serve(`{"guest_name": "Skipper", "guest_email": "not-an-email", "guest_count": 0}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)

		// Field names come from json tags
		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "guest_email")
		assert.Contains(t, fields, "guest_count")
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := serve(`{"guest_name": "Skipper", "guest_email": "skipper@example.com", "guest_count": 2}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("request id carried into response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", "req-validation-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "req-validation-1", resp.Error.RequestID)
	})
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(json.Unmarshal([]byte("{"), &struct{}{}), "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestValidationMessage(t *testing.T) {
	type roomInput struct {
		Name     string  `validate:"required"`
		Email    string  `validate:"email"`
		Code     string  `validate:"min=5"`
		Notes    string  `validate:"max=10"`
		PIN      string  `validate:"len=4"`
		RoomID   string  `validate:"uuid"`
		Type     string  `validate:"oneof=single double suite"`
		Capacity int     `validate:"gte=1"`
		Floor    int     `validate:"lte=50"`
		Rate     float64 `validate:"gt=0"`
		Website  string  `validate:"url"`
		Phone    string  `validate:"numeric"`
	}

	v := validator.New()
	err := v.Struct(roomInput{
		Email:    "not-an-email",
		Code:     "ab",
		Notes:    "this note is far too long",
		PIN:      "12",
		RoomID:   "not-a-uuid",
		Type:     "penthouse",
		Capacity: 0,
		Floor:    99,
		Rate:     0,
		Website:  "not a url",
		Phone:    "abc",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	expected := map[string]string{
		"Name":     "This field is required",
		"Email":    "Invalid email format",
		"Code":     "Must be at least 5 characters",
		"Notes":    "Must be at most 10 characters",
		"PIN":      "Must be exactly 4 characters",
		"RoomID":   "Invalid UUID format",
		"Type":     "Must be one of: single double suite",
		"Capacity": "Must be greater than or equal to 1",
		"Floor":    "Must be less than or equal to 50",
		"Rate":     "Must be greater than 0",
		"Website":  "Invalid URL format",
		"Phone":    "Must be numeric",
	}

	seen := make(map[string]bool)
	for _, e := range validationErrs {
		want, ok := expected[e.Field()]
		require.True(t, ok, "unexpected field %s", e.Field())
		assert.Equal(t, want, validationMessage(e), "field %s", e.Field())
		seen[e.Field()] = true
	}
	assert.Len(t, seen, len(expected))
}
