package rest

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

type SessionResponse struct {
	ID         string          `json:"id"`
	Board      [9]string       `json:"board"`
	Turn       string          `json:"turn"`
	Status     string          `json:"status"`
	Winner     string          `json:"winner,omitempty"`
	LegalMoves []int           `json:"legal_moves"`
	AI         entity.AIConfig `json:"ai"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewSessionResponse flattens a session for the browser. A finished game reports no legal moves.
func NewSessionResponse(session *entity.Session) SessionResponse {
	var board [9]string
	for i, cell := range session.Game.Board {
		board[i] = string(cell)
	}

	legalMoves := session.Game.LegalMoves()
	if session.Game.IsFinished() {
		legalMoves = []int{}
	}

	return SessionResponse{
		ID:         session.ID,
		Board:      board,
		Turn:       string(session.Game.Turn),
		Status:     session.Game.Outcome.Status,
		Winner:     string(session.Game.Outcome.Winner),
		LegalMoves: legalMoves,
		AI:         session.AI,
	}
}
