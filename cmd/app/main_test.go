package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("memory", func(t *testing.T) {
		cfg := newTestConfig()

		st, closeStore, err := openStore(cfg, logger)
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.NotNil(t, st.Users)
		closeStore()
	})

	t.Run("unknown storage", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Storage = "bogus"

		st, closeStore, err := openStore(cfg, logger)
		assert.EqualError(t, err, `unknown storage "bogus"`)
		assert.Nil(t, st)
		assert.Nil(t, closeStore)
	})
}

func TestRun_ReturnsStartupError(t *testing.T) {
	t.Setenv("STORAGE", "bogus")

	err := run()
	assert.EqualError(t, err, `open bogus store: unknown storage "bogus"`)
}
