package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged with the board view
type MessageType string

const (
	// inbound
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"
	MessageTypeUndo    MessageType = "undo"
	MessageTypeRedo    MessageType = "redo"
	MessageTypeSelect  MessageType = "select"

	// outbound
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeLegalMoves   MessageType = "legalMoves"
	MessageTypeClockExpired MessageType = "clockExpired"
	MessageTypeError        MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals payload into a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}

type SelectPayload struct {
	Square string `json:"square"`
}

type PromotePayload struct {
	Piece string `json:"piece"`
}

type LegalMovesPayload struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

type ClockExpiredPayload struct {
	Color string `json:"color"`
	White int    `json:"white"`
	Black int    `json:"black"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
