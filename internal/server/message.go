package server

import (
	"encoding/json"
	"time"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/money"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client → Server
	MessageTypeStartRound   MessageType = "start_round"
	MessageTypeSubmitAnswer MessageType = "submit_answer"
	MessageTypeAbandon      MessageType = "abandon"

	// Server → Client
	MessageTypeWelcome  MessageType = "welcome"
	MessageTypePending  MessageType = "pending"
	MessageTypeQuestion MessageType = "question"
	MessageTypeResult   MessageType = "result"
	MessageTypeChat     MessageType = "chat"
	MessageTypeError    MessageType = "error"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type StartRoundData struct {
	Region string `json:"region"`
}

type SubmitAnswerData struct {
	Letter string `json:"letter"`
}

// Server → Client Messages

type WelcomeData struct {
	Regions []string     `json:"regions"`
	Roster  []string     `json:"roster"`
	Letters []string     `json:"letters"`
	Balance money.Amount `json:"balance"`
}

// PendingData is an interim view emitted before a blocking generator call so
// clients can show progress while the round is prepared or evaluated.
type PendingData struct {
	Note string `json:"note"`
}

type QuestionData struct {
	Region   string `json:"region"`
	Question string `json:"question"`
}

// ResultData carries the round outcome verbatim from the core.
type ResultData struct {
	Result *game.RoundResult `json:"result"`
}

type ChatData struct {
	Tail []string `json:"tail"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
