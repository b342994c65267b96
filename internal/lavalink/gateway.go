package lavalink

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"
)

// eventSendTimeout bounds how long the read loop waits on a backlogged
// consumer before an event is lost. Blocking keeps delivery in order;
// the timeout keeps a dead consumer from wedging the read loop.
const eventSendTimeout = 5 * time.Second

// wsConn is the subset of *websocket.Conn the read loop needs
type wsConn interface {
	ReadMessage() (int, []byte, error)
	Close() error
}

type gatewayMessage struct {
	Op        string `json:"op"`
	SessionID string `json:"sessionId"` // op=ready
	Resumed   bool   `json:"resumed"`   // op=ready

	// op=event
	Type      string    `json:"type"`
	GuildID   string    `json:"guildId"`
	Reason    EndReason `json:"reason"`
	Code      int       `json:"code"`
	ByRemote  bool      `json:"byRemote"`
	Threshold int64     `json:"thresholdMs"`
	Exception struct {
		Message  string `json:"message"`
		Severity string `json:"severity"`
	} `json:"exception"`

	// op=playerUpdate
	State struct {
		Time      int64 `json:"time"`
		Position  int64 `json:"position"`
		Connected bool  `json:"connected"`
	} `json:"state"`
}

// Open dials the node websocket and starts the event read loop. It
// blocks until the node's ready message arrives.
func (c *Client) Open() error {
	scheme := "ws"
	if c.cfg.Secure {
		scheme = "wss"
	}

	header := http.Header{}
	header.Set("Authorization", c.cfg.Password)
	header.Set("Client-Name", clientName)
	if c.cfg.Discord.State.User != nil {
		header.Set("User-Id", c.cfg.Discord.State.User.ID)
	}

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("%s://%s/v4/websocket", scheme, c.cfg.Addr), header)
	if err != nil {
		return fmt.Errorf("failed to dial node websocket: %w", err)
	}
	c.conn = conn

	// first frame must be the ready op carrying our session id
	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to read node ready message: %w", err)
	}

	var ready gatewayMessage
	if err := json.Unmarshal(data, &ready); err != nil || ready.Op != "ready" {
		conn.Close()
		return fmt.Errorf("unexpected first node message %q: %w", data, err)
	}

	c.mu.Lock()
	c.sessionID = ready.SessionID
	c.mu.Unlock()

	zlog.Info().Str("session", ready.SessionID).Bool("resumed", ready.Resumed).Msg("audio node connected")

	go c.readLoop()
	return nil
}

// Close shuts down the websocket and the event stream
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) readLoop() {
	defer close(c.events)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				if !errors.Is(err, websocket.ErrCloseSent) {
					zlog.Error().Err(err).Msg("node websocket read failed")
				}
			}
			return
		}

		var msg gatewayMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			zlog.Warn().Err(err).Msg("failed to decode node message")
			continue
		}

		switch msg.Op {
		case "event":
			c.dispatch(&msg)
		case "playerUpdate":
			c.send(PlayerUpdateEvent{
				GuildID:    msg.GuildID,
				PositionMs: msg.State.Position,
				Connected:  msg.State.Connected,
			}, "playerUpdate")
		case "stats":
			// node load snapshot, nothing to drive
		}
	}
}

func (c *Client) dispatch(msg *gatewayMessage) {
	var event Event

	switch msg.Type {
	case "TrackEndEvent":
		event = TrackEndEvent{GuildID: msg.GuildID, Reason: msg.Reason}
	case "TrackExceptionEvent":
		event = TrackExceptionEvent{GuildID: msg.GuildID, Message: msg.Exception.Message}
	case "TrackStuckEvent":
		event = TrackStuckEvent{GuildID: msg.GuildID, ThresholdMs: msg.Threshold}
	case "WebSocketClosedEvent":
		event = WebSocketClosedEvent{GuildID: msg.GuildID, Code: msg.Code, Reason: string(msg.Reason)}
	case "TrackStartEvent":
		return // engine tracks its own starts
	default:
		zlog.Debug().Str("type", msg.Type).Msg("ignoring unknown node event")
		return
	}

	c.send(event, msg.Type)
}

func (c *Client) send(event Event, kind string) {
	select {
	case c.events <- event:
		return
	default:
	}

	timer := time.NewTimer(eventSendTimeout)
	defer timer.Stop()

	select {
	case c.events <- event:
	case <-c.done:
	case <-timer.C:
		zlog.Warn().Str("type", kind).Str("guild", event.EventGuildID()).Msg("node event dropped, consumer backlogged")
	}
}
