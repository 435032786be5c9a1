package telemetry_test

import (
	"sync"
	"testing"

	"github.com/harborstay/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// disabledProfilerConfig keeps Enabled false so the unit tests never
// need a Pyroscope server listening.
func disabledProfilerConfig() telemetry.ProfilerConfig {
	return telemetry.ProfilerConfig{
		Enabled:         false,
		ServerAddress:   "http://localhost:4040",
		ApplicationName: "booking-api",
	}
}

func TestNewProfiler_Disabled(t *testing.T) {
	profiler, err := telemetry.NewProfiler(disabledProfilerConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, profiler)

	assert.False(t, profiler.IsEnabled())
	assert.Equal(t, "booking-api", profiler.GetConfig().ApplicationName)
	assert.NoError(t, profiler.Stop())
}

func TestNewProfiler_ValidationErrors(t *testing.T) {
	t.Run("missing server address", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.Enabled = true
		cfg.ServerAddress = ""

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Nil(t, profiler)
		assert.Contains(t, err.Error(), "server address is required")
	})

	t.Run("missing application name", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.Enabled = true
		cfg.ApplicationName = ""

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Nil(t, profiler)
		assert.Contains(t, err.Error(), "application name is required")
	})
}

// Needs a Pyroscope server on localhost:4040, so only runs outside
// short mode.
func TestNewProfiler_EnabledIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := disabledProfilerConfig()
	cfg.Enabled = true
	cfg.ProfileCPU = true
	cfg.ProfileAllocObjects = true
	cfg.ProfileAllocSpace = true
	cfg.ProfileInuseObjects = true
	cfg.ProfileInuseSpace = true
	cfg.ProfileGoroutines = true

	profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, profiler)

	assert.True(t, profiler.IsEnabled())
	assert.NoError(t, profiler.Stop())
}

func TestProfiler_StopIdempotent(t *testing.T) {
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	for range 3 {
		assert.NoError(t, profiler.Stop())
	}
}

func TestProfiler_StopConcurrent(t *testing.T) {
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = profiler.Stop()
		}()
	}
	wg.Wait()
}

func TestProfiler_GetConfigStable(t *testing.T) {
	profiler, err := telemetry.NewProfiler(disabledProfilerConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	first := profiler.GetConfig()
	second := profiler.GetConfig()

	assert.Equal(t, first.ApplicationName, second.ApplicationName)
	assert.Equal(t, "booking-api", second.ApplicationName)
}

func TestProfiler_ProfileTypeCombinations(t *testing.T) {
	// All cases stay disabled so construction never dials a server; the
	// point is that every flag combination builds without error.
	tests := []struct {
		name   string
		modify func(*telemetry.ProfilerConfig)
	}{
		{"no profiles", func(cfg *telemetry.ProfilerConfig) {}},
		{"cpu only", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileCPU = true
		}},
		{"allocation profiles", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileAllocObjects = true
			cfg.ProfileAllocSpace = true
		}},
		{"in-use profiles", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileInuseObjects = true
			cfg.ProfileInuseSpace = true
		}},
		{"mutex profiles", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileMutexCount = true
			cfg.ProfileMutexDuration = true
			cfg.MutexProfileFraction = 10
		}},
		{"block profiles", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileBlockCount = true
			cfg.ProfileBlockDuration = true
			cfg.BlockProfileRate = 10
		}},
		{"everything", func(cfg *telemetry.ProfilerConfig) {
			cfg.ProfileCPU = true
			cfg.ProfileAllocObjects = true
			cfg.ProfileAllocSpace = true
			cfg.ProfileInuseObjects = true
			cfg.ProfileInuseSpace = true
			cfg.ProfileGoroutines = true
			cfg.ProfileMutexCount = true
			cfg.ProfileMutexDuration = true
			cfg.ProfileBlockCount = true
			cfg.ProfileBlockDuration = true
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := disabledProfilerConfig()
			tc.modify(&cfg)

			profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			require.NotNil(t, profiler)

			assert.False(t, profiler.IsEnabled())
			assert.NoError(t, profiler.Stop())
		})
	}
}

func TestProfiler_ConfigPassthrough(t *testing.T) {
	t.Run("disable gc runs", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.DisableGCRuns = true

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		assert.True(t, profiler.GetConfig().DisableGCRuns)
		assert.NoError(t, profiler.Stop())
	})

	t.Run("basic auth", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.BasicAuthUser = "pyro"
		cfg.BasicAuthPassword = "scope"

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		got := profiler.GetConfig()
		assert.Equal(t, "pyro", got.BasicAuthUser)
		assert.Equal(t, "scope", got.BasicAuthPassword)
		assert.NoError(t, profiler.Stop())
	})

	t.Run("mutex runtime settings", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.ProfileMutexCount = true
		cfg.ProfileMutexDuration = true
		cfg.MutexProfileFraction = 7

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		got := profiler.GetConfig()
		assert.True(t, got.ProfileMutexCount)
		assert.True(t, got.ProfileMutexDuration)
		assert.Equal(t, 7, got.MutexProfileFraction)
		assert.NoError(t, profiler.Stop())
	})

	t.Run("block runtime settings", func(t *testing.T) {
		cfg := disabledProfilerConfig()
		cfg.ProfileBlockCount = true
		cfg.ProfileBlockDuration = true
		cfg.BlockProfileRate = 7

		profiler, err := telemetry.NewProfiler(cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		got := profiler.GetConfig()
		assert.True(t, got.ProfileBlockCount)
		assert.True(t, got.ProfileBlockDuration)
		assert.Equal(t, 7, got.BlockProfileRate)
		assert.NoError(t, profiler.Stop())
	})
}
