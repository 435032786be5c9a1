package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installSpanRecorder swaps the global tracer provider for one backed
// by an in-memory recorder, restoring the previous provider on cleanup.
func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
	})

	return recorder
}

func recordedAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// newTracingRouter builds a router with tracing and the attribute
// injector installed, with optional middleware between them to simulate
// request ID or JWT handling.
func newTracingRouter(t *testing.T, between ...gin.HandlerFunc) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := installSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{ServiceName: "booking-api", Enabled: true}))
	router.Use(between...)
	router.Use(TracingAttributeInjector())
	return router, recorder
}

func TestTracing_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := installSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	router.GET("/api/v1/bookings", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}

func TestTracing_SpanPerRequest(t *testing.T) {
	router, recorder := newTracingRouter(t)
	router.GET("/api/v1/bookings/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1001", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/bookings/:id", spans[0].Name())
}

func TestTracing_RequestIDFromHeader(t *testing.T) {
	router, recorder := newTracingRouter(t)
	router.POST("/api/v1/bookings", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	val, ok := recordedAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-abc-123", val.AsString())
}

func TestTracing_RequestIDFromContextWins(t *testing.T) {
	router, recorder := newTracingRouter(t, func(c *gin.Context) {
		c.Set("request_id", "ctx-id")
		c.Next()
	})
	router.GET("/api/v1/rooms", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.Header.Set("X-Request-ID", "header-id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	val, ok := recordedAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "ctx-id", val.AsString())
}

func TestTracing_RequestIDTruncated(t *testing.T) {
	router, recorder := newTracingRouter(t)
	router.GET("/api/v1/rooms", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", MaxRequestIDLength+50))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	val, ok := recordedAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Len(t, val.AsString(), MaxRequestIDLength)
}

func TestTracing_ClaimsAttributes(t *testing.T) {
	// Simulates the JWT middleware having resolved claims before the
	// injector runs
	router, recorder := newTracingRouter(t, func(c *gin.Context) {
		c.Set(JWTTenantIDKey, "marina-bay")
		c.Set(JWTUserIDKey, "u-42")
		c.Next()
	})
	router.GET("/api/v1/bookings", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	tenant, ok := recordedAttr(spans[0], "tenant_id")
	require.True(t, ok)
	assert.Equal(t, "marina-bay", tenant.AsString())

	user, ok := recordedAttr(spans[0], "user_id")
	require.True(t, ok)
	assert.Equal(t, "u-42", user.AsString())
}

func TestTracing_TenantHeaderMustBeUUID(t *testing.T) {
	t.Run("valid uuid accepted", func(t *testing.T) {
		router, recorder := newTracingRouter(t)
		router.GET("/api/v1/availability", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
		req.Header.Set("X-Tenant-ID", "0a4fa0a2-3f3b-4b9e-9d5c-1f2e3d4c5b6a")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		val, ok := recordedAttr(spans[0], "tenant_id")
		require.True(t, ok)
		assert.Equal(t, "0a4fa0a2-3f3b-4b9e-9d5c-1f2e3d4c5b6a", val.AsString())
	})

	t.Run("non-uuid rejected", func(t *testing.T) {
		router, recorder := newTracingRouter(t)
		router.GET("/api/v1/availability", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
		req.Header.Set("X-Tenant-ID", "<script>alert(1)</script>")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		_, ok := recordedAttr(spans[0], "tenant_id")
		assert.False(t, ok)
	})
}

func TestIsValidTenantID(t *testing.T) {
	tests := []struct {
		name     string
		tenantID string
		want     bool
	}{
		{"lowercase uuid", "0a4fa0a2-3f3b-4b9e-9d5c-1f2e3d4c5b6a", true},
		{"uppercase uuid", "0A4FA0A2-3F3B-4B9E-9D5C-1F2E3D4C5B6A", true},
		{"missing dashes", "0a4fa0a23f3b4b9e9d5c1f2e3d4c5b6a", false},
		{"plain slug", "marina-bay", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxTenantIDLength+1), false},
		{"sql injection", "'; DROP TABLE bookings; --", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isValidTenantID(tc.tenantID))
		})
	}
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantError  bool
		wantStatus string
	}{
		{"ok", http.StatusOK, false, ""},
		{"created", http.StatusCreated, false, ""},
		{"not found", http.StatusNotFound, true, "Not Found"},
		{"unauthorized", http.StatusUnauthorized, true, "Unauthorized"},
		{"forbidden", http.StatusForbidden, true, "Forbidden"},
		{"conflict", http.StatusConflict, true, "Conflict"},
		{"server error", http.StatusInternalServerError, true, "Internal Server Error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			recorder := installSpanRecorder(t)

			router := gin.New()
			router.Use(TracingWithConfig(TracingConfig{ServiceName: "booking-api", Enabled: true}))
			router.Use(SpanErrorMarker())
			router.GET("/api/v1/bookings/:id", func(c *gin.Context) {
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1", nil))

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			if tc.wantError {
				assert.Equal(t, codes.Error, spans[0].Status().Code)
				assert.Equal(t, tc.wantStatus, spans[0].Status().Description)
			} else {
				assert.NotEqual(t, codes.Error, spans[0].Status().Code)
			}
		})
	}
}

func TestSpanErrorMarker_WithoutSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No tracing middleware, marker must not panic
	router := gin.New()
	router.Use(SpanErrorMarker())
	router.GET("/api/v1/bookings", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()
	assert.Equal(t, "harborstay-backend", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
}

func TestTracing_DefaultConstructor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := installSpanRecorder(t)

	router := gin.New()
	router.Use(Tracing())
	router.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, recorder.Ended(), 1)
}
