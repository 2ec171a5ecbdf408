package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()

		// Given: a stored session
		session := entity.NewSession("abc", entity.AIConfig{Enabled: true, Difficulty: entity.DifficultyHard})
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller keeps mutating its own game
		_, err := session.Game.Play(0)
		require.NoError(t, err)

		// Then: the stored session is not affected
		stored, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), stored.Game)
		assert.Equal(t, session.AI, stored.AI)

		// And: mutating the returned copy does not affect the store either
		_, err = stored.Game.Play(4)
		require.NoError(t, err)

		again, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), again.Game)
	})

	t.Run("Returns ErrSessionNotFound for unknown id", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()

		_, err := sessionRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Deletes a session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc", entity.AIConfig{Difficulty: entity.DifficultyEasy})))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "abc"))

		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		require.ErrorIs(t, sessionRepo.DeleteByID(ctx, "abc"), apperror.ErrSessionNotFound)
	})
}
