// Package obs drives OBS Studio over its WebSocket control protocol.
package obs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// opRequest is the obs-websocket opcode for a client request envelope.
const opRequest = 6

type request struct {
	Op int         `json:"op"`
	D  requestData `json:"d"`
}

type requestData struct {
	RequestType string         `json:"requestType"`
	RequestID   string         `json:"requestId"`
	RequestData map[string]any `json:"requestData,omitempty"`
}

type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient() *Client {
	return &Client{}
}

// Connect dials the OBS WebSocket endpoint, replacing any previous
// connection. Inbound messages are drained and logged; the runtime only
// issues fire-and-forget requests.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.Close()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to OBS at %s: %w", url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)

	log.Printf("✅ Connected to OBS WebSocket at %s", url)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var message map[string]any
		if err := conn.ReadJSON(&message); err != nil {
			log.Printf("⚠️ OBS WebSocket connection closed: %v", err)
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}
		log.Printf("📨 OBS message: %v", message)
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendRequest sends one obs-websocket request envelope.
func (c *Client) SendRequest(requestType string, data map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to OBS")
	}

	message := request{
		Op: opRequest,
		D: requestData{
			RequestType: requestType,
			RequestID:   newRequestID(),
			RequestData: data,
		},
	}
	if err := c.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to send OBS request %s: %w", requestType, err)
	}

	log.Printf("📤 OBS request sent: %s", requestType)
	return nil
}

// SetScene switches the current program scene.
func (c *Client) SetScene(sceneName string) error {
	return c.SendRequest("SetCurrentProgramScene", map[string]any{"sceneName": sceneName})
}

func (c *Client) ToggleRecording() error {
	return c.SendRequest("ToggleRecord", nil)
}

func (c *Client) ToggleStreaming() error {
	return c.SendRequest("ToggleStream", nil)
}

func (c *Client) SetSourceVisibility(sourceName string, visible bool) error {
	return c.SendRequest("SetSceneItemEnabled", map[string]any{
		"sourceName":       sourceName,
		"sceneItemEnabled": visible,
	})
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
