package service

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func newTestBot(seed int64) BotService {
	return NewBotService(rand.New(rand.NewSource(seed))) //nolint: gosec // deterministic tests
}

func TestBotService_Easy(t *testing.T) {
	t.Run("Always picks a legal cell", func(t *testing.T) {
		bot := newTestBot(1)

		// Given: a partly filled board
		board := entity.Board{
			x, e, o,
			e, x, e,
			o, e, e,
		}

		for iter := 0; iter < 200; iter++ {
			// When: the easy bot selects a move
			cell, err := bot.SelectMove(board, entity.DifficultyEasy)

			// Then: the cell is one of the legal moves
			require.NoError(t, err)
			assert.Contains(t, board.LegalMoves(), cell)
		}
	})

	t.Run("Eventually picks every legal cell", func(t *testing.T) {
		bot := newTestBot(2)
		board := entity.Board{x, e, e, e, e, e, e, e, e}

		seen := make(map[int]bool)
		for iter := 0; iter < 500; iter++ {
			cell, err := bot.SelectMove(board, entity.DifficultyEasy)
			require.NoError(t, err)
			seen[cell] = true
		}

		assert.Len(t, seen, 8)
		assert.False(t, seen[0])
	})

	t.Run("Works with the global source", func(t *testing.T) {
		bot := NewBotService(nil)
		board := entity.Board{x, o, x, o, x, o, o, x, e}

		cell, err := bot.SelectMove(board, entity.DifficultyEasy)

		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})
}

func TestBotService_Medium(t *testing.T) {
	t.Run("Blocks the human's two in a row", func(t *testing.T) {
		bot := newTestBot(3)

		// Given: X holds cells 0 and 1
		board := entity.Board{
			x, x, e,
			e, e, e,
			e, e, e,
		}

		for iter := 0; iter < 50; iter++ {
			// When: the medium bot selects a move
			cell, err := bot.SelectMove(board, entity.DifficultyMedium)

			// Then: it always blocks at cell 2
			require.NoError(t, err)
			assert.Equal(t, 2, cell)
		}
	})

	t.Run("First threatening line wins the tie", func(t *testing.T) {
		bot := newTestBot(4)

		// Given: X threatens the middle row (cell 5) and the first column (cell 6)
		board := entity.Board{
			x, o, o,
			x, x, e,
			e, e, e,
		}

		cell, err := bot.SelectMove(board, entity.DifficultyMedium)

		// Then: the middle row comes first in line order
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Does not complete its own line", func(t *testing.T) {
		bot := newTestBot(5)

		// Given: O could win at cell 2 and X threatens cell 5
		board := entity.Board{
			o, o, e,
			x, x, e,
			x, e, e,
		}

		cell, err := bot.SelectMove(board, entity.DifficultyMedium)

		// Then: the bot blocks instead of winning
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Does not complete its own line without a threat", func(t *testing.T) {
		// Given: O could win at cell 2 and X has no threat
		board := entity.Board{
			o, o, e,
			x, e, e,
			e, e, x,
		}

		// Then: the bot falls back to a random legal cell, so cell 2 is not always chosen
		bot := newTestBot(6)
		seen := make(map[int]bool)
		for iter := 0; iter < 200; iter++ {
			cell, err := bot.SelectMove(board, entity.DifficultyMedium)
			require.NoError(t, err)
			require.Contains(t, board.LegalMoves(), cell)
			seen[cell] = true
		}

		assert.Greater(t, len(seen), 1)
	})

	t.Run("Ignores lines that are already blocked", func(t *testing.T) {
		bot := newTestBot(7)

		// Given: X has two in the top row but O already holds the third cell
		board := entity.Board{
			x, x, o,
			e, e, e,
			e, e, e,
		}

		for iter := 0; iter < 50; iter++ {
			cell, err := bot.SelectMove(board, entity.DifficultyMedium)

			// Then: any legal cell may come back
			require.NoError(t, err)
			assert.Contains(t, board.LegalMoves(), cell)
		}
	})
}

func TestBotService_Hard(t *testing.T) {
	t.Run("Prefers its own win over a block", func(t *testing.T) {
		bot := newTestBot(8)

		// Given: O holds 0 and 1, X holds 3 and 4
		board := entity.Board{
			o, o, e,
			x, x, e,
			e, e, e,
		}

		// When: the hard bot selects a move
		cell, err := bot.SelectMove(board, entity.DifficultyHard)

		// Then: it completes the top row
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks an immediate threat", func(t *testing.T) {
		bot := newTestBot(9)

		// Given: X threatens cell 2, O holds the centre
		board := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}

		cell, err := bot.SelectMove(board, entity.DifficultyHard)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Deterministic on an empty board", func(t *testing.T) {
		bot := newTestBot(10)

		first, err := bot.SelectMove(entity.Board{}, entity.DifficultyHard)
		require.NoError(t, err)
		second, err := bot.SelectMove(entity.Board{}, entity.DifficultyHard)
		require.NoError(t, err)

		// every opening is a draw, so the first cell is kept
		assert.Equal(t, 0, first)
		assert.Equal(t, first, second)
	})

	t.Run("Does not modify the caller's board", func(t *testing.T) {
		bot := newTestBot(11)
		board := entity.Board{x, e, e, e, e, e, e, e, e}
		before := board

		_, err := bot.SelectMove(board, entity.DifficultyHard)

		require.NoError(t, err)
		assert.Equal(t, before, board)
	})

	t.Run("Never loses against any human sequence", func(t *testing.T) {
		bot := newTestBot(12)

		var play func(game *entity.Game)
		play = func(game *entity.Game) {
			for _, cell := range game.LegalMoves() {
				next := *game

				outcome, err := next.Place(cell, entity.HumanMark)
				require.NoError(t, err)
				require.NotEqual(t, entity.HumanMark, outcome.Winner, "human won with board %v", next.Board)

				if outcome.IsFinished() {
					continue
				}

				botCell, err := bot.SelectMove(next.Board, entity.DifficultyHard)
				require.NoError(t, err)

				outcome, err = next.Place(botCell, entity.BotMark)
				require.NoError(t, err)

				if !outcome.IsFinished() {
					play(&next)
				}
			}
		}

		play(entity.NewGame())
	})
}

func TestMinimax_Scores(t *testing.T) {
	t.Run("Human line scores -10 before anything else", func(t *testing.T) {
		board := entity.Board{x, x, x, o, o, e, e, e, e}

		result := minimax(&board, entity.BotMark)

		assert.Equal(t, scoredMove{cell: -1, score: humanWinScore}, result)
	})

	t.Run("Full board scores 0", func(t *testing.T) {
		board := entity.Board{x, o, x, x, o, o, o, x, x}

		result := minimax(&board, entity.BotMark)

		assert.Equal(t, scoredMove{cell: -1, score: drawScore}, result)
	})

	t.Run("Minimizing node picks the human win", func(t *testing.T) {
		// Given: X to move and X can win at cell 2
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		result := minimax(&board, entity.HumanMark)

		assert.Equal(t, scoredMove{cell: 2, score: humanWinScore}, result)
	})
}

func TestBotService_Errors(t *testing.T) {
	bot := newTestBot(13)

	t.Run("Full board has no legal move", func(t *testing.T) {
		for _, difficulty := range []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard} {
			_, err := bot.SelectMove(entity.Board{x, o, x, x, o, o, o, x, x}, difficulty)

			assert.ErrorIs(t, err, apperror.ErrNoLegalMove)
		}
	})

	t.Run("Won board has no legal move", func(t *testing.T) {
		_, err := bot.SelectMove(entity.Board{x, x, x, o, o, e, e, e, e}, entity.DifficultyHard)

		assert.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		_, err := bot.SelectMove(entity.Board{}, entity.Difficulty("nightmare"))

		assert.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
	})
}
