package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
)

type gamePlayService interface {
	NewGame(ctx context.Context, ai entity.AIConfig) (*entity.Session, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)

	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	UpdateSettings(ctx context.Context, sessionID string, ai entity.AIConfig) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, payload *RequestPayload) (*entity.Session, error)

type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	gamePlay gamePlayService
	defaults func() entity.AIConfig
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gamePlay gamePlayService, defaults func() entity.AIConfig) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		gamePlay: gamePlay,
		defaults: defaults,
	}

	server.handlers = map[string]handlerFunc{
		actionNewGame:  server.handleNewGame,
		actionState:    server.handleState,
		actionTurn:     server.handleTurn,
		actionRestart:  server.handleRestart,
		actionSettings: server.handleSettings,
	}

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and serves messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go that.keepAlive(conn, done)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if err = that.sendMessage(conn, actionError, ResponsePayload{Error: "invalid message"}); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.processMessage(ctx, &msg)
		if err := that.sendMessage(conn, msg.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) processMessage(ctx context.Context, msg *Message) ResponsePayload {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return ResponsePayload{Error: fmt.Sprintf("unknown action %q", msg.Action)}
	}

	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return ResponsePayload{Error: "invalid payload"}
		}
	}

	session, err := handler(ctx, &payload)
	if err != nil {
		that.logger.Debug("action failed", "action", msg.Action, "error", err)
		return ResponsePayload{Session: session, Error: errorMessage(err)}
	}

	return ResponsePayload{Session: session}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(Message{Action: action, Payload: rawPayload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// keepAlive pings the client until done is closed. gorilla allows one concurrent writer
// for control frames next to the message writer.
func (that *Server) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
