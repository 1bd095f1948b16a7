package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_UPLOAD_SIZE", "MAX_STORE_SIZE", "SEED_DEMO_TRACKS", "AUDIO_ONLY", "READ_TIMEOUT", "LOG_FILE"} {
		t.Setenv(k, "") // restores the original value after the test
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := FromEnv()
	require.Equal(t, ":5000", cfg.Port)
	require.EqualValues(t, 32<<20, cfg.MaxUploadSize)
	require.EqualValues(t, 512<<20, cfg.MaxStoreSize)
	require.False(t, cfg.SeedDemoTracks)
	require.False(t, cfg.AudioOnly)
	require.Equal(t, 30*time.Second, cfg.ReadTimeout)
	require.Empty(t, cfg.LogFile)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_UPLOAD_SIZE", "10MiB")
	t.Setenv("MAX_STORE_SIZE", "1 GB")
	t.Setenv("SEED_DEMO_TRACKS", "true")
	t.Setenv("AUDIO_ONLY", "true")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("LOG_MAX_BACKUPS", "7")

	cfg := FromEnv()
	require.Equal(t, ":8080", cfg.Port)
	require.EqualValues(t, 10<<20, cfg.MaxUploadSize)
	require.EqualValues(t, 1000*1000*1000, cfg.MaxStoreSize)
	require.True(t, cfg.SeedDemoTracks)
	require.True(t, cfg.AudioOnly)
	require.Equal(t, 5*time.Second, cfg.ReadTimeout)
	require.Equal(t, 7, cfg.LogMaxBackups)
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "lots")
	t.Setenv("SEED_DEMO_TRACKS", "maybe")
	t.Setenv("WRITE_TIMEOUT", "soon")
	t.Setenv("LOG_MAX_AGE", "old")

	cfg := FromEnv()
	require.EqualValues(t, 32<<20, cfg.MaxUploadSize)
	require.False(t, cfg.SeedDemoTracks)
	require.Equal(t, 60*time.Second, cfg.WriteTimeout)
	require.Equal(t, 28, cfg.LogMaxAge)
}
