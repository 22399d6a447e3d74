// Package streamerbot drives Streamer.bot over its WebSocket action API.
package streamerbot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type message struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
	ID     string         `json:"id"`
}

type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient() *Client {
	return &Client{}
}

// Connect dials the Streamer.bot WebSocket endpoint, replacing any
// previous connection.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.Close()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to Streamer.bot at %s: %w", url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)

	log.Printf("✅ Connected to Streamer.bot WebSocket at %s", url)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var inbound map[string]any
		if err := conn.ReadJSON(&inbound); err != nil {
			log.Printf("⚠️ Streamer.bot WebSocket connection closed: %v", err)
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}
		log.Printf("📨 Streamer.bot message: %v", inbound)
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Send issues one action envelope.
func (c *Client) Send(action string, data map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to Streamer.bot")
	}

	envelope := message{
		Action: action,
		Data:   data,
		ID:     newRequestID(),
	}
	if err := c.conn.WriteJSON(envelope); err != nil {
		return fmt.Errorf("failed to send Streamer.bot action %s: %w", action, err)
	}

	log.Printf("📤 Streamer.bot action sent: %s", action)
	return nil
}

// DoAction executes a named Streamer.bot action.
func (c *Client) DoAction(actionName string) error {
	return c.Send("DoAction", map[string]any{"action": actionName})
}

// SendChatMessage posts a chat message through Streamer.bot.
func (c *Client) SendChatMessage(text string) error {
	return c.Send("SendMessage", map[string]any{"message": text})
}

// SetGlobalVariable sets a Streamer.bot global variable.
func (c *Client) SetGlobalVariable(name string, value any) error {
	return c.Send("SetGlobalVar", map[string]any{"name": name, "value": value})
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "req"
	}
	return hex.EncodeToString(b)
}
