package ws

import (
	"encoding/json"

	"github.com/dicepad/dicepad/internal/api/response"
)

// Message types spoken over the websocket. Clients send the first three;
// the server replies with the last two.
const (
	TypeCreateGame = "create-game"
	TypeJoinGame   = "join-game"
	TypeAddScore   = "add-score"
	TypeGameUpdate = "game-update"
	TypeError      = "error"
)

// Error codes carried in error payloads
const (
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeAlreadyClaimed   = "ALREADY_CLAIMED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeMalformedMessage = "MALFORMED_MESSAGE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Envelope wraps every message in both directions. The payload is decoded
// according to the type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateGamePayload asks the server to start a game for the named players,
// in turn order
type CreateGamePayload struct {
	PlayerNames []string `json:"playerNames"`
}

// JoinGamePayload subscribes the connection to an existing game's updates
type JoinGamePayload struct {
	GameID string `json:"gameId"`
}

// AddScorePayload records a score against one player's category
type AddScorePayload struct {
	GameID          string `json:"gameId"`
	PlayerID        string `json:"playerId"`
	AchievementType string `json:"achievementType"`
	Score           int    `json:"score"`
}

// ErrorPayload is the server's reply when a request cannot be honoured.
// Code is machine readable; Message is for humans.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func marshalGameUpdate(game response.Game) ([]byte, error) {
	payload, err := json.Marshal(game)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:    TypeGameUpdate,
		Payload: payload,
	})
}

func marshalError(code, message string) ([]byte, error) {
	payload, err := json.Marshal(ErrorPayload{
		Code:    code,
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:    TypeError,
		Payload: payload,
	})
}
