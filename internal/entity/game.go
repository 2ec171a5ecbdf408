package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// Game - single board engine. It is mutated only through Place and Reset.
type Game struct {
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

func NewGame() *Game {
	game := &Game{}
	game.Reset()

	return game
}

// Reset - clears the board and gives the first move to the human mark.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = HumanMark
	that.Outcome = Outcome{Status: StatusOngoing}
}

// Place writes mark into cell. The game is left untouched when an error is returned;
// every error wraps apperror.ErrInvalidMove. Place does not check mark against Turn.
func (that *Game) Place(cell int, mark Mark) (Outcome, error) {
	if that.Outcome.IsFinished() {
		return that.Outcome, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if cell < 0 || cell >= len(that.Board) {
		return that.Outcome, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return that.Outcome, fmt.Errorf("%w: %w: %q", apperror.ErrInvalidMove, apperror.ErrInvalidMark, mark)
	}

	if that.Board[cell] != EmptyCell {
		return that.Outcome, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark
	that.Turn = mark.Opponent()
	that.Outcome = that.Board.Evaluate()

	return that.Outcome, nil
}

// Play places the mark whose turn it is.
func (that *Game) Play(cell int) (Outcome, error) {
	return that.Place(cell, that.Turn)
}

func (that *Game) Evaluate() Outcome {
	return that.Board.Evaluate()
}

func (that *Game) LegalMoves() []int {
	return that.Board.LegalMoves()
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}
