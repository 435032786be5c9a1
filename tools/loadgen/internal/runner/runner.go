// Package runner drives load against the booking API. Workers mix
// creates and reads, and every identifier harvested from a response
// goes through the parameter pool so later requests reference entities
// that actually exist.
package runner

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harborstay/tools/loadgen/internal/pool"
)

var guestNames = []string{
	"Ada Deck", "Jordan Blake", "Sam Harbor", "Noor Quay",
	"Lee Anchor", "Mira Tide", "Oscar Berth", "Pia Mast",
}

// Config tunes a load run.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	Workers  int
	Duration time.Duration
	Timeout  time.Duration
}

// Report summarizes a finished run.
type Report struct {
	Requests int64
	Failures int64
	Bookings int64
	Elapsed  time.Duration
	Pool     pool.Stats
}

// Runner executes the booking scenario mix against one API.
type Runner struct {
	client *Client
	params pool.ParameterPool
	cfg    Config

	requests atomic.Int64
	failures atomic.Int64
	bookings atomic.Int64
}

// New creates a runner. The pool is owned by the caller and survives
// the run, so consecutive runs can share harvested identifiers.
func New(cfg Config, params pool.ParameterPool) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Runner{
		client: NewClient(cfg.BaseURL, cfg.Timeout),
		params: params,
		cfg:    cfg,
	}
}

// Run signs in, seeds the pool with the tenant's rooms and hammers the
// API until the duration elapses or the context is canceled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	if err := r.client.Login(ctx, r.cfg.Email, r.cfg.Password); err != nil {
		return nil, err
	}
	if err := r.seedRooms(ctx); err != nil {
		return nil, err
	}

	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				r.step(ctx)
			}
		}()
	}
	wg.Wait()

	stats, err := r.params.Stats(context.Background())
	if err != nil {
		return nil, err
	}
	return &Report{
		Requests: r.requests.Load(),
		Failures: r.failures.Load(),
		Bookings: r.bookings.Load(),
		Elapsed:  time.Since(start),
		Pool:     stats,
	}, nil
}

// seedRooms lists the tenant's rooms and pools their IDs. A tenant with
// no rooms cannot be load tested, so that is an error rather than an
// empty run.
func (r *Runner) seedRooms(ctx context.Context) error {
	ids, err := r.client.ListRooms(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("seed: tenant has no rooms to book")
	}
	for _, id := range ids {
		value := pool.NewParameterValue(id, pool.SemanticTypeRoomID, 0).
			WithSource("GET /api/v1/rooms", "$.data[*].id")
		if _, err := r.params.Add(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

// step runs one request of the scenario mix: mostly creates, with reads
// against previously created bookings mixed in.
func (r *Runner) step(ctx context.Context) {
	switch n := rand.IntN(10); {
	case n < 6:
		r.stepCreate(ctx)
	case n < 9:
		r.stepRead(ctx)
	default:
		r.stepReseed(ctx)
	}
}

func (r *Runner) stepCreate(ctx context.Context) {
	room, err := r.params.GetRandom(ctx, pool.SemanticTypeRoomID)
	if err != nil || room == nil {
		return
	}

	checkIn := time.Now().AddDate(0, 0, 1+rand.IntN(60))
	checkOut := checkIn.AddDate(0, 0, 1+rand.IntN(7))
	guest := guestNames[rand.IntN(len(guestNames))]

	r.requests.Add(1)
	id, err := r.client.CreateBooking(ctx, room.Value.(string), guest, checkIn, checkOut, newIdempotencyKey())
	if err != nil {
		r.fail(ctx, err)
		return
	}
	r.bookings.Add(1)

	value := pool.NewParameterValue(id, pool.SemanticTypeBookingID, 0).
		WithSource("POST /api/v1/bookings", "$.data.id")
	_, _ = r.params.Add(ctx, value)
}

func (r *Runner) stepRead(ctx context.Context) {
	booked, err := r.params.GetRandom(ctx, pool.SemanticTypeBookingID)
	if err != nil || booked == nil {
		// Nothing created yet, fall back to producing work.
		r.stepCreate(ctx)
		return
	}

	r.requests.Add(1)
	if err := r.client.GetBooking(ctx, booked.Value.(string)); err != nil {
		r.fail(ctx, err)
		// A booking deleted out from under us stays failed forever,
		// drop it so the miss does not repeat.
		_, _ = r.params.Remove(ctx, booked)
	}
}

func (r *Runner) stepReseed(ctx context.Context) {
	r.requests.Add(1)
	ids, err := r.client.ListRooms(ctx)
	if err != nil {
		r.fail(ctx, err)
		return
	}
	for _, id := range ids {
		value := pool.NewParameterValue(id, pool.SemanticTypeRoomID, 0).
			WithSource("GET /api/v1/rooms", "$.data[*].id")
		_, _ = r.params.Add(ctx, value)
	}
}

func (r *Runner) fail(ctx context.Context, _ error) {
	if ctx.Err() != nil {
		// Run wind-down cancels in-flight requests, not a failure.
		return
	}
	r.failures.Add(1)
}

func newIdempotencyKey() string {
	var b [16]byte
	_, _ = crand.Read(b[:])
	return hex.EncodeToString(b[:])
}
