package client

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroom/zhajinhua/internal/game"
	"github.com/cardroom/zhajinhua/internal/server"
)

// UpdateHandler receives each new state snapshot.
type UpdateHandler func(server.StateUpdateData)

// ErrorHandler receives host-side rejections.
type ErrorHandler func(server.ErrorData)

// Client is a replica of one room: it connects, sends intents, and mirrors
// whatever state the host broadcasts. It holds no game rules of its own;
// every STATE_UPDATE replaces the local view wholesale.
type Client struct {
	serverURL string
	roomID    string
	conn      *websocket.Conn
	logger    *log.Logger

	mu        sync.RWMutex
	connected bool
	view      server.StateUpdateData
	hasView   bool
	onUpdate  UpdateHandler
	onError   ErrorHandler

	stopChan chan struct{}
	doneChan chan struct{}
}

// New creates a client for one room on the given server.
func New(serverURL, roomID string, logger *log.Logger) *Client {
	return &Client{
		serverURL: serverURL,
		roomID:    roomID,
		logger:    logger.WithPrefix("client"),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// OnUpdate registers the snapshot handler. Must be called before Connect.
func (c *Client) OnUpdate(h UpdateHandler) { c.onUpdate = h }

// OnError registers the rejection handler. Must be called before Connect.
func (c *Client) OnError(h ErrorHandler) { c.onError = h }

// Connect dials the server and starts mirroring the room.
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	q := u.Query()
	q.Set("room", c.roomID)
	u.RawQuery = q.Encode()

	c.logger.Info("Connecting to server", "url", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readMessages()
	return nil
}

// Disconnect closes the connection.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false
	close(c.stopChan)

	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return c.conn.Close()
	}
	return nil
}

// Done is closed when the read loop exits.
func (c *Client) Done() <-chan struct{} { return c.doneChan }

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// View returns the latest snapshot and whether one has arrived yet.
func (c *Client) View() (server.StateUpdateData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view, c.hasView
}

// Seat returns the seat the host assigned, or -1 while observing.
func (c *Client) Seat() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasView {
		return -1
	}
	return c.view.YourSeat
}

// Join requests a seat under the given name.
func (c *Client) Join(name string) error {
	msg, err := server.NewMessage(server.MessageTypeJoinRequest, server.JoinRequestData{Name: name})
	if err != nil {
		return err
	}
	return c.send(msg)
}

// SendAction submits a betting intent for the client's seat.
func (c *Client) SendAction(action game.Action, target int) error {
	seat := c.Seat()
	if seat < 0 {
		return fmt.Errorf("not seated")
	}

	data := server.ActionData{PlayerID: seat, Action: action.String()}
	if target != game.NoTarget {
		data.Target = &target
	}
	msg, err := server.NewMessage(server.MessageTypeAction, data)
	if err != nil {
		return err
	}
	return c.send(msg)
}

func (c *Client) send(msg *server.Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(msg)
}

// readMessages mirrors the host until the connection drops.
func (c *Client) readMessages() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		close(c.doneChan)
	}()

	for {
		select {
		case <-c.stopChan:
			return
		default:
			var msg server.Message
			err := c.conn.ReadJSON(&msg)
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("WebSocket error", "error", err)
				}
				return
			}
			c.dispatch(&msg)
		}
	}
}

func (c *Client) dispatch(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeStateUpdate:
		var snapshot server.StateUpdateData
		if err := msg.Decode(&snapshot); err != nil {
			c.logger.Error("Bad state update", "error", err)
			return
		}

		// Replace, never merge. The host is the only authority.
		c.mu.Lock()
		c.view = snapshot
		c.hasView = true
		handler := c.onUpdate
		c.mu.Unlock()

		if handler != nil {
			handler(snapshot)
		}

	case server.MessageTypeError:
		var data server.ErrorData
		if err := msg.Decode(&data); err != nil {
			return
		}
		c.logger.Warn("Host rejected request", "code", data.Code, "message", data.Message)
		c.mu.RLock()
		handler := c.onError
		c.mu.RUnlock()
		if handler != nil {
			handler(data)
		}

	default:
		c.logger.Debug("Ignoring message", "type", msg.Type)
	}
}
