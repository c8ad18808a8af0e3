package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dicepad/dicepad/internal/ws"
)

// Client talks to the server, over HTTP for reads and over the websocket
// for anything that changes a game
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Get performs a GET request and decodes the JSON response into result
func (c *Client) Get(path string, result any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// GetRaw performs a GET request and returns the raw response body, for
// non-JSON endpoints like the QR image
func (c *Client) GetRaw(path string, result *[]byte) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	*result = respBody
	return nil
}

// DialWS opens a websocket connection to the server's /ws endpoint
func (c *Client) DialWS() (*websocket.Conn, error) {
	url := c.baseURL
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}

	conn, resp, err := websocket.DefaultDialer.Dial(url+"/ws", nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("websocket connection failed: %w", err)
	}
	return conn, nil
}

// Send writes one protocol message to the websocket
func (c *Client) Send(conn *websocket.Conn, msgType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := conn.WriteJSON(ws.Envelope{Type: msgType, Payload: raw}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// ReceiveGame reads the next server message and decodes the game snapshot
// it carries. Error replies come back as Go errors.
func (c *Client) ReceiveGame(conn *websocket.Conn) (Game, error) {
	var envelope ws.Envelope
	if err := conn.ReadJSON(&envelope); err != nil {
		return Game{}, fmt.Errorf("failed to read message: %w", err)
	}

	switch envelope.Type {
	case ws.TypeGameUpdate:
		var game Game
		if err := json.Unmarshal(envelope.Payload, &game); err != nil {
			return Game{}, fmt.Errorf("failed to parse game update: %w", err)
		}
		return game, nil
	case ws.TypeError:
		var apiErr APIError
		if err := json.Unmarshal(envelope.Payload, &apiErr); err != nil {
			return Game{}, fmt.Errorf("failed to parse error reply: %w", err)
		}
		return Game{}, fmt.Errorf("%s", apiErr.String())
	default:
		return Game{}, fmt.Errorf("unexpected message type: %s", envelope.Type)
	}
}
