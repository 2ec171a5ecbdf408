package service

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

const (
	botWinScore   = 10
	humanWinScore = -10
	drawScore     = 0
)

type scoredMove struct {
	cell  int
	score int
}

// minimax searches the whole remaining tree. Scores are absolute (bot win +10, human win -10)
// and not discounted by depth. Children are visited in ascending cell order and only a strictly
// better score replaces the current choice, so ties keep the first cell.
// board is restored before returning.
func minimax(board *entity.Board, current entity.Mark) scoredMove {
	switch {
	case board.HasLine(entity.HumanMark):
		return scoredMove{cell: -1, score: humanWinScore}
	case board.HasLine(entity.BotMark):
		return scoredMove{cell: -1, score: botWinScore}
	}

	availableCells := board.LegalMoves()
	if len(availableCells) == 0 {
		return scoredMove{cell: -1, score: drawScore}
	}

	maximizing := current == entity.BotMark

	best := scoredMove{cell: -1}
	for i, cell := range availableCells {
		board[cell] = current
		result := minimax(board, current.Opponent())
		board[cell] = entity.EmptyCell

		if i == 0 ||
			(maximizing && result.score > best.score) ||
			(!maximizing && result.score < best.score) {
			best = scoredMove{cell: cell, score: result.score}
		}
	}

	return best
}
