package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	errSessionRequired = errors.New("session_id is required")
	errCellRequired    = errors.New("cell is required")
	errAIRequired      = errors.New("ai is required")
)

func (that *Server) handleNewGame(ctx context.Context, payload *RequestPayload) (*entity.Session, error) {
	ai := that.defaults()
	if payload.AI != nil {
		ai = *payload.AI
	}

	session, err := that.gamePlay.NewGame(ctx, ai)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return session, nil
}

func (that *Server) handleState(ctx context.Context, payload *RequestPayload) (*entity.Session, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	return that.gamePlay.GetGame(ctx, payload.SessionID)
}

func (that *Server) handleTurn(ctx context.Context, payload *RequestPayload) (*entity.Session, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	if payload.Cell == nil {
		return nil, errCellRequired
	}

	return that.gamePlay.MakeTurn(ctx, payload.SessionID, *payload.Cell)
}

func (that *Server) handleRestart(ctx context.Context, payload *RequestPayload) (*entity.Session, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	return that.gamePlay.Restart(ctx, payload.SessionID)
}

func (that *Server) handleSettings(ctx context.Context, payload *RequestPayload) (*entity.Session, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	if payload.AI == nil {
		return nil, errAIRequired
	}

	return that.gamePlay.UpdateSettings(ctx, payload.SessionID, *payload.AI)
}

// errorMessage hides storage failures from the client.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, errSessionRequired),
		errors.Is(err, errCellRequired),
		errors.Is(err, errAIRequired):
		return err.Error()
	default:
		return "internal error"
	}
}
