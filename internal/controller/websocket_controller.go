package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// jsonWriter serializes writes to one connection; session broadcasts and
// direct replies arrive from different goroutines.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

type lockedConn struct {
	mu   sync.Mutex
	conn jsonWriter
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	connID, _ := c.Locals("connID").(string)
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("conn_id", connID))
	out := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, connID, out); err != nil {
		logger.Warn("failed to register connection", zap.Error(err))
		wsc.sendError(out, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)
	logger.Debug("connection registered")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("connection closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(out, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, out, msg); err != nil {
			logger.Debug("message rejected", zap.String("type", string(msg.Type)), zap.Error(err))
			wsc.sendError(out, err)
		}
	}
}

// handleMessage applies one inbound message. State changes reach every
// observer through the session broadcast; only legalMoves is answered here.
func (wsc *WebSocketController) handleMessage(gameID string, out jsonWriter, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.Promote(gameID, p.Piece)
		return err

	case ws.MessageTypeUndo:
		_, _, err := wsc.gameService.Undo(gameID)
		return err

	case ws.MessageTypeRedo:
		_, _, err := wsc.gameService.Redo(gameID)
		return err

	case ws.MessageTypeSelect:
		var p ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		moves, err := wsc.gameService.Select(gameID, p.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{
			Square:       p.Square,
			Destinations: squareNames(moves),
		})
		if err != nil {
			return err
		}
		return out.WriteJSON(reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(out jsonWriter, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := out.WriteJSON(msg); werr != nil {
		wsc.logger.Debug("failed to send error", zap.Error(werr))
	}
}
