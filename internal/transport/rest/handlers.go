package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gamePlayService interface {
	NewGame(ctx context.Context, ai entity.AIConfig) (*entity.Session, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	EndGame(ctx context.Context, sessionID string) error

	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	UpdateSettings(ctx context.Context, sessionID string, ai entity.AIConfig) (*entity.Session, error)
}

// aiDefaults returns the settings a new session starts with when the request omits them.
type aiDefaults func() entity.AIConfig

type Handlers struct {
	logger   *slog.Logger
	gamePlay gamePlayService
	defaults aiDefaults
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlayService, defaults aiDefaults) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
		defaults: defaults,
	}
}

type createSessionRequest struct {
	AI *settingsRequest `json:"ai,omitempty"`
}

type settingsRequest struct {
	Enabled    bool   `json:"enabled"`
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	ai := that.defaults()
	if req.AI != nil {
		parsed, err := req.AI.toConfig()
		if err != nil {
			that.handleError(w, "CreateSession", err)
			return
		}
		ai = parsed
	}

	session, err := that.gamePlay.NewGame(r.Context(), ai)
	if err != nil {
		that.handleError(w, "CreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, NewSessionResponse(session))
}

func (that *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "GetSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, NewSessionResponse(session))
}

func (that *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, "DeleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) RestartSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.gamePlay.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "RestartSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, NewSessionResponse(session))
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	session, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.handleError(w, "MakeMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, NewSessionResponse(session))
}

func (that *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ai, err := req.toConfig()
	if err != nil {
		that.handleError(w, "UpdateSettings", err)
		return
	}

	session, err := that.gamePlay.UpdateSettings(r.Context(), chi.URLParam(r, "id"), ai)
	if err != nil {
		that.handleError(w, "UpdateSettings", err)
		return
	}

	that.writeJSON(w, http.StatusOK, NewSessionResponse(session))
}

func (that *settingsRequest) toConfig() (entity.AIConfig, error) {
	return entity.AIConfig{Enabled: that.Enabled, Difficulty: entity.Difficulty(that.Difficulty)}.Normalize()
}

// handleError maps domain errors to HTTP statuses.
func (that *Handlers) handleError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		that.writeError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
	case errors.Is(err, apperror.ErrInvalidMove):
		that.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrUnknownDifficulty):
		that.writeError(w, http.StatusBadRequest, err.Error())
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	that.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
