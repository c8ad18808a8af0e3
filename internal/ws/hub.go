package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dicepad/dicepad/internal/api/response"
	"github.com/dicepad/dicepad/internal/model"
	"github.com/dicepad/dicepad/internal/services/registry"
)

type inboundMessage struct {
	client *Client
	data   []byte
}

// Hub owns every websocket connection and its game subscriptions. All
// state lives on the Run goroutine: each inbound message is handled to
// completion, broadcast included, before the next one is picked up, so a
// snapshot can never interleave with the mutation that produced it.
type Hub struct {
	registry *registry.Controller
	logger   *slog.Logger

	clients map[*Client]bool
	games   map[model.GameID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage
}

// NewHub creates a hub; the caller is responsible for starting Run
func NewHub(registryController *registry.Controller, logger *slog.Logger) *Hub {
	return &Hub{
		registry:   registryController,
		logger:     logger,
		clients:    make(map[*Client]bool),
		games:      make(map[model.GameID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMessage),
	}
}

// Run processes connection and message events until the context is
// cancelled. It must run on exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.dropClient(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			h.dropClient(client)
		case msg := <-h.inbound:
			h.dispatch(ctx, msg.client, msg.data)
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, client *Client, data []byte) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		h.sendError(client, CodeMalformedMessage, "message is not valid JSON")
		return
	}

	switch envelope.Type {
	case TypeCreateGame:
		h.handleCreateGame(ctx, client, envelope.Payload)
	case TypeJoinGame:
		h.handleJoinGame(ctx, client, envelope.Payload)
	case TypeAddScore:
		h.handleAddScore(ctx, client, envelope.Payload)
	default:
		h.sendError(client, CodeMalformedMessage, "unknown message type")
	}
}

func (h *Hub) handleCreateGame(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload CreateGamePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(client, CodeMalformedMessage, "invalid create-game payload")
		return
	}

	game, err := h.registry.CreateGame(ctx, payload.PlayerNames)
	if err != nil {
		h.sendServiceError(client, err)
		return
	}

	h.subscribe(client, game.ID)
	h.broadcastGame(game)
}

func (h *Hub) handleJoinGame(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload JoinGamePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(client, CodeMalformedMessage, "invalid join-game payload")
		return
	}

	game, err := h.registry.GetGame(ctx, model.GameID(payload.GameID))
	if err != nil {
		h.sendServiceError(client, err)
		return
	}

	h.subscribe(client, game.ID)

	// Joining changes no game state, so only the joiner needs the snapshot
	data, err := marshalGameUpdate(response.GameFromModel(game))
	if err != nil {
		h.sendError(client, CodeInternalError, "failed to encode game")
		return
	}
	h.deliver(client, data)
}

func (h *Hub) handleAddScore(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload AddScorePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(client, CodeMalformedMessage, "invalid add-score payload")
		return
	}

	// Validate before touching the registry
	if !model.AchievementType(payload.AchievementType).Valid() {
		h.sendError(client, CodeInvalidRequest, "unknown achievement type")
		return
	}
	if payload.Score < 0 {
		h.sendError(client, CodeInvalidRequest, "score must not be negative")
		return
	}

	game, err := h.registry.ClaimScore(
		ctx,
		model.GameID(payload.GameID),
		model.PlayerID(payload.PlayerID),
		model.AchievementType(payload.AchievementType),
		payload.Score,
	)
	if err != nil {
		h.sendServiceError(client, err)
		return
	}

	h.broadcastGame(game)
}

// broadcastGame marshals the snapshot once and fans it out to every
// connection subscribed to the game
func (h *Hub) broadcastGame(game *model.Game) {
	data, err := marshalGameUpdate(response.GameFromModel(game))
	if err != nil {
		h.logger.Error("failed to encode game update",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	for client := range h.games[game.ID] {
		h.deliver(client, data)
	}
}

// deliver queues a frame for one client. A client whose buffer is full is
// too far behind to ever catch up on full snapshots, so it gets dropped.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.logger.Warn("dropping slow websocket client")
		h.dropClient(client)
	}
}

func (h *Hub) sendServiceError(client *Client, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		h.sendError(client, CodeGameNotFound, err.Error())
	case errors.Is(err, model.ErrPlayerNotFound):
		h.sendError(client, CodePlayerNotFound, err.Error())
	case errors.Is(err, model.ErrAlreadyClaimed):
		h.sendError(client, CodeAlreadyClaimed, err.Error())
	case errors.Is(err, model.ErrUnknownAchievement), errors.Is(err, model.ErrNoPlayers):
		h.sendError(client, CodeInvalidRequest, err.Error())
	default:
		h.logger.Error("websocket request failed", slog.String("error", err.Error()))
		h.sendError(client, CodeInternalError, "internal error")
	}
}

func (h *Hub) sendError(client *Client, code, message string) {
	data, err := marshalError(code, message)
	if err != nil {
		h.logger.Error("failed to encode error reply", slog.String("error", err.Error()))
		return
	}
	h.deliver(client, data)
}

func (h *Hub) subscribe(client *Client, gameID model.GameID) {
	subscribers, ok := h.games[gameID]
	if !ok {
		subscribers = make(map[*Client]bool)
		h.games[gameID] = subscribers
	}
	subscribers[client] = true
}

// dropClient removes a client from every subscription and closes its send
// channel, which ends its writeLoop
func (h *Hub) dropClient(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	for gameID, subscribers := range h.games {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.games, gameID)
		}
	}
	close(client.send)
}
