package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory storage needs no connection", func(t *testing.T) {
		repo, closeRepo, err := newSessionRepository(ctx, &config.Config{Storage: config.StorageMemory})

		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.NoError(t, closeRepo())
	})

	t.Run("Unknown storage is rejected", func(t *testing.T) {
		_, _, err := newSessionRepository(ctx, &config.Config{Storage: "postgres"})

		require.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Redis storage needs a host", func(t *testing.T) {
		_, _, err := newSessionRepository(ctx, &config.Config{Storage: config.StorageRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
