package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harborstay/tools/loadgen/internal/pool"
)

// fakeAPI is a minimal in-memory stand-in for the booking API: one
// login, one room listing and a booking store.
type fakeAPI struct {
	mu       sync.Mutex
	rooms    []string
	bookings map[string]bool
	nextID   atomic.Int64
	creates  atomic.Int64
	reads    atomic.Int64
}

func newFakeAPI(rooms ...string) *fakeAPI {
	return &fakeAPI{rooms: rooms, bookings: make(map[string]bool)}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": status < 400, "data": data})
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "INVALID_CREDENTIALS", "message": "Invalid credentials"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "test-token"})
	})
	mux.HandleFunc("GET /api/v1/rooms", func(w http.ResponseWriter, r *http.Request) {
		rooms := make([]map[string]string, len(f.rooms))
		for i, id := range f.rooms {
			rooms[i] = map[string]string{"id": id}
		}
		writeJSON(w, http.StatusOK, rooms)
	})
	mux.HandleFunc("POST /api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Idempotency-Key") == "" {
			writeJSON(w, http.StatusBadRequest, nil)
			return
		}
		id := fmt.Sprintf("booking-%d", f.nextID.Add(1))
		f.mu.Lock()
		f.bookings[id] = true
		f.mu.Unlock()
		f.creates.Add(1)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	})
	mux.HandleFunc("GET /api/v1/bookings/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/bookings/")
		f.mu.Lock()
		known := f.bookings[id]
		f.mu.Unlock()
		if !known {
			writeJSON(w, http.StatusNotFound, nil)
			return
		}
		f.reads.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"id": id})
	})
	return authCheck(mux)
}

// authCheck rejects API calls without the bearer token, so the test
// fails loudly if the runner ever drops it.
func authCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/auth/") &&
			r.Header.Get("Authorization") != "Bearer test-token" {
			writeJSON(w, http.StatusUnauthorized, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newRunnerPool(t *testing.T) pool.ParameterPool {
	t.Helper()
	config := pool.DefaultPoolConfig()
	config.CleanupInterval = 0
	p := pool.NewShardedParameterPool(config)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestRunnerDrivesScenarioMix(t *testing.T) {
	api := newFakeAPI("room-1", "room-2")
	server := httptest.NewServer(api.handler())
	defer server.Close()

	params := newRunnerPool(t)
	r := New(Config{
		BaseURL:  server.URL,
		Email:    "ops@example.com",
		Password: "secret",
		Workers:  4,
		Duration: 300 * time.Millisecond,
	}, params)

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Requests == 0 {
		t.Fatal("expected requests to be issued")
	}
	if report.Failures != 0 {
		t.Fatalf("expected no failures, got %d", report.Failures)
	}
	if report.Bookings == 0 {
		t.Fatal("expected bookings to be created")
	}
	// Requests canceled by the deadline can land server-side without
	// being counted, so the server may only see more creates.
	if api.creates.Load() < report.Bookings {
		t.Fatalf("server saw %d creates, report counted %d", api.creates.Load(), report.Bookings)
	}

	// Room IDs were seeded and booking IDs harvested back into the pool.
	ctx := context.Background()
	roomCount, err := params.Count(ctx, pool.SemanticTypeRoomID)
	if err != nil || roomCount == 0 {
		t.Fatalf("expected pooled room IDs, got %d (err %v)", roomCount, err)
	}
	bookingCount, err := params.Count(ctx, pool.SemanticTypeBookingID)
	if err != nil || bookingCount == 0 {
		t.Fatalf("expected pooled booking IDs, got %d (err %v)", bookingCount, err)
	}
}

func TestRunnerLoginFailureStopsTheRun(t *testing.T) {
	api := newFakeAPI("room-1")
	server := httptest.NewServer(api.handler())
	defer server.Close()

	r := New(Config{
		BaseURL:  server.URL,
		Email:    "ops@example.com",
		Password: "wrong",
		Workers:  2,
		Duration: 100 * time.Millisecond,
	}, newRunnerPool(t))

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("expected login failure to abort the run")
	}
}

func TestRunnerRequiresSeedRooms(t *testing.T) {
	api := newFakeAPI()
	server := httptest.NewServer(api.handler())
	defer server.Close()

	r := New(Config{
		BaseURL:  server.URL,
		Email:    "ops@example.com",
		Password: "secret",
		Workers:  2,
		Duration: 100 * time.Millisecond,
	}, newRunnerPool(t))

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("expected a tenant without rooms to abort the run")
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"code": "FORBIDDEN", "message": "This endpoint requires a company membership"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListRooms(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "FORBIDDEN") {
		t.Fatalf("expected the API error code in %q", err)
	}
}
