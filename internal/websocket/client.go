package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/agent/runner"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/logic/chat"
	"github.com/neboloop/think/internal/types"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 32768 // 32KB

	// Chat frames queued behind the running exchange.
	maxPending = 8
)

// Event types sent to clients.
const (
	EventSpelling = "spelling"
	EventText     = "text"
	EventDone     = "done"
	EventError    = "error"
)

type client struct {
	id     string
	conn   *websocket.Conn
	runner *runner.Runner

	send    chan []byte
	pending chan types.WSInbound

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func newClient(conn *websocket.Conn, r *runner.Runner) *client {
	ctx, cancel := context.WithCancel(context.Background())
	return &client{
		id:      "client-" + uuid.NewString()[:8],
		conn:    conn,
		runner:  r,
		send:    make(chan []byte, 256),
		pending: make(chan types.WSInbound, maxPending),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// serve runs the pumps and blocks until the connection closes.
func (c *client) serve() {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.writePump()
	}()
	go func() {
		defer wg.Done()
		c.chatLoop()
	}()
	c.readPump()
	wg.Wait()
}

func (c *client) close() {
	c.once.Do(func() {
		c.cancel()
		c.conn.Close()
	})
}

// readPump decodes chat frames and queues them for chatLoop.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Errorf("WebSocket read error: %v", err)
			}
			return
		}

		var in types.WSInbound
		if err := json.Unmarshal(msg, &in); err != nil {
			c.emit(types.WSEvent{Type: EventError, Error: "invalid message: " + err.Error()})
			continue
		}
		select {
		case c.pending <- in:
		default:
			c.emit(types.WSEvent{Type: EventError, SessionId: in.SessionId, Error: "too many pending messages"})
		}
	}
}

// writePump owns all writes to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// chatLoop runs queued exchanges in arrival order.
func (c *client) chatLoop() {
	for {
		select {
		case in := <-c.pending:
			c.exchange(in)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *client) exchange(in types.WSInbound) {
	req, cleared, err := chat.PrepareRun(c.runner, in.Message, in.SessionId, in.ClearHistory)
	if err != nil {
		c.emitError(in.SessionId, err)
		return
	}
	if cleared != nil {
		c.emit(types.WSEvent{Type: EventDone, SessionId: cleared.SessionId, Data: cleared})
		return
	}

	ex, err := c.runner.Run(c.ctx, req)
	if err != nil {
		c.emitError(in.SessionId, err)
		return
	}

	c.emit(types.WSEvent{
		Type:      EventSpelling,
		SessionId: ex.SessionKey,
		Data:      chat.BuildResponse(ex.SessionKey, "", ex.Analysis, 0),
	})

	var reply strings.Builder
	for ev := range ex.Events {
		switch ev.Type {
		case ai.EventTypeText:
			reply.WriteString(ev.Text)
			c.emit(types.WSEvent{Type: EventText, SessionId: ex.SessionKey, Text: ev.Text})
		case ai.EventTypeError:
			c.emitError(ex.SessionKey, ev.Error)
		case ai.EventTypeDone:
			count := 0
			if conv, ok := c.runner.Sessions().Get(ex.SessionKey); ok {
				count = conv.Len() / 2
			}
			c.emit(types.WSEvent{
				Type:      EventDone,
				SessionId: ex.SessionKey,
				Data:      chat.BuildResponse(ex.SessionKey, reply.String(), ex.Analysis, count),
			})
		}
	}
}

func (c *client) emitError(key string, err error) {
	msg := err.Error()
	if errors.Is(err, runner.ErrEmptyMessage) {
		msg = "Message is required"
	}
	c.emit(types.WSEvent{Type: EventError, SessionId: key, Error: msg})
}

// emit queues ev for writePump, dropping it once the client is gone.
func (c *client) emit(ev types.WSEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logging.Errorf("WebSocket encode error: %v", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.ctx.Done():
	}
}
