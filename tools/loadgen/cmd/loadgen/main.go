// Command loadgen drives synthetic booking traffic against a running
// API server. It signs in as one tenant user, seeds its parameter pool
// from the tenant's rooms and mixes booking creates and reads until the
// duration elapses.
//
// Usage:
//
//	loadgen -url http://localhost:8080 -email ops@example.com -password secret \
//	    -workers 8 -duration 1m
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harborstay/tools/loadgen/internal/pool"
	"github.com/harborstay/tools/loadgen/internal/runner"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "API base URL")
		email    = flag.String("email", "", "account email (required)")
		password = flag.String("password", "", "account password (required)")
		workers  = flag.Int("workers", 4, "concurrent workers")
		duration = flag.Duration("duration", 30*time.Second, "how long to run")
		timeout  = flag.Duration("timeout", 10*time.Second, "per-request timeout")
		ttl      = flag.Duration("pool-ttl", 5*time.Minute, "pooled value TTL")
		eviction = flag.String("pool-eviction", "fifo", "pool eviction policy: fifo, lru or random")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "loadgen: -email and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	poolConfig := pool.DefaultPoolConfig()
	poolConfig.DefaultTTL = *ttl
	poolConfig.EvictionPolicy = pool.ParseEvictionPolicy(*eviction)
	params := pool.NewShardedParameterPool(poolConfig)
	defer params.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Config{
		BaseURL:  *baseURL,
		Email:    *email,
		Password: *password,
		Workers:  *workers,
		Duration: *duration,
		Timeout:  *timeout,
	}, params)

	report, err := r.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loadgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("elapsed        %s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Printf("requests       %d (%.1f/s)\n", report.Requests,
		float64(report.Requests)/report.Elapsed.Seconds())
	fmt.Printf("failures       %d\n", report.Failures)
	fmt.Printf("bookings made  %d\n", report.Bookings)
	fmt.Printf("pool values    %d (hit rate %.1f%%, %d evicted, %d expired)\n",
		report.Pool.TotalValues, report.Pool.HitRate(),
		report.Pool.EvictionCount, report.Pool.ExpiredCount)
}
