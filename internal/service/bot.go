package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type BotService interface {
	SelectMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

type botService struct {
	rnd *rand.Rand
}

// NewBotService - rnd drives the easy bot and the medium fallback. Not safe for concurrent use
// unless rnd is nil, in which case the global source is used.
func NewBotService(rnd *rand.Rand) BotService {
	return &botService{
		rnd: rnd,
	}
}

// SelectMove returns the cell the bot mark should take next. The board is not modified.
func (that *botService) SelectMove(board entity.Board, difficulty entity.Difficulty) (int, error) {
	if board.HasLine(entity.HumanMark) || board.HasLine(entity.BotMark) {
		return -1, fmt.Errorf("%w: board is already won", apperror.ErrNoLegalMove)
	}

	availableCells := board.LegalMoves()
	if len(availableCells) == 0 {
		return -1, apperror.ErrNoLegalMove
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return that.randomCell(availableCells), nil
	case entity.DifficultyMedium:
		return that.blockingCell(board, availableCells), nil
	case entity.DifficultyHard:
		return minimax(&board, entity.BotMark).cell, nil
	default:
		return -1, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

// blockingCell only looks at the human's threats; it never completes its own line.
func (that *botService) blockingCell(board entity.Board, availableCells []int) int {
	for _, combo := range entity.WinCombos {
		humanCells, emptyCell := 0, -1

		for _, cell := range combo {
			switch board[cell] {
			case entity.HumanMark:
				humanCells++
			case entity.EmptyCell:
				emptyCell = cell
			}
		}

		if humanCells == 2 && emptyCell != -1 {
			return emptyCell
		}
	}

	return that.randomCell(availableCells)
}

func (that *botService) randomCell(availableCells []int) int {
	if that.rnd == nil {
		return availableCells[rand.Intn(len(availableCells))] //nolint: gosec // it's ok
	}

	return availableCells[that.rnd.Intn(len(availableCells))]
}
