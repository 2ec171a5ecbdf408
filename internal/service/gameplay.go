package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type GamePlayService interface {
	NewGame(ctx context.Context, ai entity.AIConfig) (*entity.Session, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	EndGame(ctx context.Context, sessionID string) error

	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	UpdateSettings(ctx context.Context, sessionID string, ai entity.AIConfig) (*entity.Session, error)
}

type gamePlayService struct {
	logger *slog.Logger

	// mu serializes read-modify-write of sessions and guards the bot's random source.
	mu sync.Mutex

	gameService GameService
	botService  BotService
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
	}
}

func (that *gamePlayService) NewGame(ctx context.Context, ai entity.AIConfig) (*entity.Session, error) {
	session, err := that.gameService.CreateSession(ctx, ai)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("game created", "sessionID", session.ID, "ai", session.AI.Enabled, "difficulty", session.AI.Difficulty)

	return session, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.gameService.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *gamePlayService) Restart(ctx context.Context, sessionID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.gameService.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	session.Game.Reset()

	if err = that.gameService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

func (that *gamePlayService) EndGame(ctx context.Context, sessionID string) error {
	if err := that.gameService.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game deleted", "sessionID", sessionID)

	return nil
}

// MakeTurn places the mark whose turn it is and, when the bot is enabled, answers with the bot's move.
func (that *gamePlayService) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.gameService.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if _, err = session.Game.Play(cell); err != nil {
		return session, fmt.Errorf("failed to make turn: %w", err)
	}

	if session.IsBotTurn() {
		if err = that.makeBotTurn(session); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if session.Game.IsFinished() {
		log.Info("game finished", "status", session.Game.Outcome.Status, "winner", session.Game.Outcome.Winner)
	}

	return session, nil
}

func (that *gamePlayService) makeBotTurn(session *entity.Session) error {
	cell, err := that.botService.SelectMove(session.Game.Board, session.AI.Difficulty)
	if err != nil {
		return fmt.Errorf("failed to select move: %w", err)
	}

	if _, err = session.Game.Place(cell, entity.BotMark); err != nil {
		return fmt.Errorf("failed to place bot mark: %w", err)
	}

	that.logger.Debug("bot moved", "sessionID", session.ID, "cell", cell, "difficulty", session.AI.Difficulty)

	return nil
}

func (that *gamePlayService) UpdateSettings(ctx context.Context, sessionID string, ai entity.AIConfig) (*entity.Session, error) {
	ai, err := ai.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid ai config: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.gameService.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	session.AI = ai

	if err = that.gameService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}
