package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lunarlabs/redpocket/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one websocket client and its game session. All incoming
// triggers are handled on the read pump goroutine, so a session only ever
// sees one trigger at a time and a round completes before the next begins.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   *game.Session
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a connection wrapper around an upgraded websocket.
func NewConnection(conn *websocket.Conn, session *game.Session, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 64),
		session: session,
		server:  server,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown.
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() {
		c.server.unregister <- c
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one client trigger. It runs on the read pump
// goroutine; blocking here is what serialises round processing per session.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeStartRound:
		var data StartRoundData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse start_round data")
			return
		}
		c.handleStartRound(data)

	case MessageTypeSubmitAnswer:
		var data SubmitAnswerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse submit_answer data")
			return
		}
		c.handleSubmitAnswer(data)

	case MessageTypeAbandon:
		c.session.Abandon()

	default:
		c.sendError("unknown_type", "unrecognised message type")
	}
}

func (c *Connection) handleStartRound(data StartRoundData) {
	region := data.Region
	if region == "" {
		region = c.server.defaultRegion()
	}

	// Interim view while the question generator runs.
	c.sendPending("Grandma is consulting the ancestors (and a fact checker)...")

	question, err := c.session.StartRound(c.ctx, region)
	if errors.Is(err, game.ErrRoundInProgress) {
		c.sendError("round_in_progress", "answer or abandon the current question first")
		return
	}
	if err != nil {
		c.sendError("internal", err.Error())
		return
	}

	c.sendData(MessageTypeQuestion, QuestionData{Region: region, Question: question})
	c.sendData(MessageTypeChat, ChatData{Tail: c.session.ChatTail()})
}

func (c *Connection) handleSubmitAnswer(data SubmitAnswerData) {
	c.sendPending("Checking red pockets...")

	result, err := c.session.SubmitAnswer(c.ctx, data.Letter)
	if errors.Is(err, game.ErrNoActiveQuestion) {
		c.sendError("no_active_question", "start a round before answering")
		return
	}
	if err != nil {
		c.sendError("internal", err.Error())
		return
	}

	c.sendData(MessageTypeResult, ResultData{Result: result})
	c.sendData(MessageTypeChat, ChatData{Tail: c.session.ChatTail()})
}

func (c *Connection) sendPending(note string) {
	c.sendData(MessageTypePending, PendingData{Note: note})
}

func (c *Connection) sendError(code, message string) {
	c.sendData(MessageTypeError, ErrorData{Code: code, Message: message})
}

func (c *Connection) sendData(t MessageType, data interface{}) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("failed to encode message", "type", t, "error", err)
		return
	}
	_ = c.SendMessage(msg)
}
