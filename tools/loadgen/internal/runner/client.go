package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin HTTP client for the booking API. It signs in once
// and carries the bearer token on every later request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a client against the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type roomResponse struct {
	ID string `json:"id"`
}

type bookingResponse struct {
	ID string `json:"id"`
}

// Login authenticates and stores the access token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, nil, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login: response carried no access token")
	}
	c.token = resp.AccessToken
	return nil
}

// ListRooms returns the IDs of the rooms visible to the signed-in user.
func (c *Client) ListRooms(ctx context.Context) ([]string, error) {
	var rooms []roomResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/rooms", nil, nil, &rooms); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}
	return ids, nil
}

// CreateBooking books the room and returns the new booking's ID. The
// idempotency key dedupes retries on the server side.
func (c *Client) CreateBooking(ctx context.Context, roomID, guestName string, checkIn, checkOut time.Time, idempotencyKey string) (string, error) {
	body := map[string]any{
		"room_id":     roomID,
		"guest_name":  guestName,
		"guest_count": 2,
		"check_in":    checkIn.Format(time.RFC3339),
		"check_out":   checkOut.Format(time.RFC3339),
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	var resp bookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", body, headers, &resp); err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}
	return resp.ID, nil
}

// GetBooking reads one booking back.
func (c *Client) GetBooking(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: status %d, undecodable body: %w", method, path, resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != nil {
			return fmt.Errorf("%s %s: %s (%s)", method, path, env.Error.Message, env.Error.Code)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}
