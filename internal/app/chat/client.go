/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file defines the Client struct, the WebSocket realization of a Session.
It manages the connection lifecycle, the message communication loops
(ReadPump and WritePump), inbound event dispatch, and slash-command
execution against the Hub.
*/
package chat

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"relaychat/internal/app/message"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// maximum allowed size (in bytes) for chat text content.
	MaxContentBytes = 5000

	// capacity of the per-client outbound queue.
	sendChannelBuffer = 256
)

// Client represents an active WebSocket connection. It implements Session.
type Client struct {
	// hub routes every operation this client performs.
	hub *Hub

	// underlying WebSocket connection object.
	ws *websocket.Conn

	// conn is the hub-side handle for this connection.
	conn *Conn

	// a buffered channel queueing frames waiting to be written.
	send chan []byte

	// closed marks the send queue as retired.
	closed atomic.Bool

	// closeOnce guards the single close of the send channel.
	closeOnce sync.Once

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient wraps an upgraded WebSocket connection and registers it with the
// hub. The caller is expected to start WritePump and then run ReadPump.
func NewClient(hub *Hub, wsConn *websocket.Conn) *Client {
	c := &Client{
		hub:    hub,
		ws:     wsConn,
		send:   make(chan []byte, sendChannelBuffer),
		logger: logx.Logger().With().Str("component", "Client").Logger(),
	}

	c.conn = hub.Register(c)
	c.logger = c.logger.With().Str("conn_id", c.conn.ID).Logger()

	return c
}

// Send implements Session: it marshals the event envelope and enqueues it.
// A full queue drops the frame rather than blocking the caller.
func (c *Client) Send(event string, payload any) {
	if c.closed.Load() {
		return
	}

	data, err := json.Marshal(OutboundEnvelope{Event: event, Data: payload})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Error marshaling outbound event")
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn().
			Str("event", event).
			Int("queue_len", len(c.send)).
			Msg("Client send channel full, dropping event")
	}
}

// Close implements Session. It retires the send queue, which makes WritePump
// write a close frame and exit. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.send)
	})
}

// ReadPump reads frames from the WebSocket connection, handling heartbeats
// (Pong) and dispatching inbound events. It performs cleanup on connection
// closure; disconnection is the only cancellation trigger, and it unwinds
// room membership and identity before resources are released.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.ws.SetReadLimit(maxMessageSize)

	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		c.dispatch(frame)
	}
}

// cleanupOnDisconnect unwinds the connection's hub state and closes the socket.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Unregister(c.conn.ID)

	if err := c.ws.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// dispatch routes one inbound frame by its event tag. Unrecognized events or
// payloads that fail their schema produce an advisory error, never a
// disconnect.
func (c *Client) dispatch(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON frame")
		c.sendError(errs.NewError(errs.ErrInvalidPayload))
		return
	}

	switch env.Event {
	case EventUserJoin:
		var p UserJoinPayload
		if c.decode(env.Data, &p) {
			c.reportErr(c.hub.Identify(c.conn.ID, p.Username))
		}

	case EventChatMessage:
		var p ChatMessagePayload
		if !c.decode(env.Data, &p) {
			return
		}
		if len(p.Text) > MaxContentBytes {
			c.sendError(errs.NewError(errs.ErrMessageTooLong))
			return
		}
		if IsCommand(p.Text) {
			c.execute(Interpret(p.Text, c.hub.RoomOf(c.conn.ID), c.hub.IdentifiedUsers()))
			return
		}
		c.reportErr(c.hub.BroadcastChat(c.conn.ID, p.Text))

	case EventPrivateMessage:
		var p PrivateMessagePayload
		if c.decode(env.Data, &p) {
			c.reportErr(c.hub.PrivateMessage(c.conn.ID, p.To, p.Body))
		}

	case EventCreateRoom:
		var p CreateRoomPayload
		if c.decode(env.Data, &p) {
			c.reportErr(c.hub.CreateRoom(c.conn.ID, p.Name, p.Type))
		}

	case EventJoinRoom:
		var p JoinRoomPayload
		if c.decode(env.Data, &p) {
			c.reportErr(c.hub.Join(c.conn.ID, p.RoomID, p.Key))
		}

	case EventLeaveRoom:
		c.hub.Leave(c.conn.ID)

	case EventGetRoomInfo:
		var p GetRoomInfoPayload
		if c.decode(env.Data, &p) {
			c.hub.RoomInfoQuery(c.conn.ID, p.RoomID)
		}

	case EventMessageReaction:
		var p ReactionPayload
		if c.decode(env.Data, &p) {
			c.reportErr(c.hub.ToggleReaction(c.conn.ID, p.RoomID, p.MessageID, p.Emoji))
		}

	case EventTyping:
		var p TypingPayload
		if c.decode(env.Data, &p) {
			c.hub.Typing(c.conn.ID, p.Typing)
		}

	case EventFileMessage:
		var att message.Attachment
		if c.decode(env.Data, &att) {
			c.reportErr(c.hub.BroadcastFile(c.conn.ID, att))
		}

	default:
		c.logger.Warn().Str("event", env.Event).Msg("Client sent unsupported event")
		c.sendError(errs.NewError(errs.ErrInvalidPayload))
	}
}

// execute performs the hub operation a classified slash command asked for.
func (c *Client) execute(action Action) {
	switch a := action.(type) {
	case ShowHelpAction:
		c.Send(EventChatMessage, message.NewSystem("", HelpText))

	case ListUsersAction:
		c.hub.SendUserList(c.conn.ID)

	case ListRoomsAction:
		c.hub.SendRoomList(c.conn.ID)

	case CreateRoomAction:
		c.reportErr(c.hub.CreateRoom(c.conn.ID, a.Name, string(a.Type)))

	case JoinRoomAction:
		c.reportErr(c.hub.Join(c.conn.ID, a.RoomID, a.Key))

	case LeaveRoomAction:
		c.hub.Leave(c.conn.ID)

	case RoomInfoAction:
		c.hub.RoomInfoQuery(c.conn.ID, a.RoomID)

	case PrivateMessageAction:
		c.reportErr(c.hub.PrivateMessage(c.conn.ID, a.TargetID, a.Body))

	case UsageAction:
		c.sendErrorText("Usage: " + a.Usage)

	case UserNotFoundAction:
		c.sendError(errs.NewError(errs.ErrUserNotFound, a.Name))

	case UnknownAction:
		c.sendErrorText("Unknown command: /" + a.Name + ". Type /help for available commands.")
	}
}

// reportErr forwards a failed hub operation to the client as an advisory
// error event. A nil error is ignored.
func (c *Client) reportErr(customErr *errs.CustomError) {
	if customErr != nil {
		c.sendError(customErr)
	}
}

// sendError sends an advisory error event. It never closes the connection.
func (c *Client) sendError(customErr *errs.CustomError) {
	c.sendErrorText(customErr.Message)
}

func (c *Client) sendErrorText(reason string) {
	c.Send(EventError, ErrorPayload{Message: reason})
}

// decode unmarshals an event payload against its fixed schema, reporting a
// schema mismatch as an advisory error.
func (c *Client) decode(data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid event payload")
		c.sendError(errs.NewError(errs.ErrInvalidPayload))
		return false
	}
	return true
}

// WritePump writes queued frames to the WebSocket connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.ws.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel.
// Returns false when the WritePump loop should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.ws.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic Ping to maintain the heartbeat.
// Returns false when the WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
