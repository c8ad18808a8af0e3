package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dicepad/dicepad/internal/dependencies/clock"
	"github.com/dicepad/dicepad/internal/dependencies/random"
	"github.com/dicepad/dicepad/internal/model"
	"github.com/dicepad/dicepad/internal/services/scoring"
	"github.com/dicepad/dicepad/internal/storage"
)

// Game code settings. The alphabet drops 0, 1, O and I so codes read
// unambiguously when shared out loud or scrawled on paper.
const (
	GameCodeLength   = 6
	GameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller owns creation, lookup and mutation of games
type Controller struct {
	storage storage.Storage
	scoring *scoring.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new registry Controller
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		scoring: scoringService,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGame builds a game for the given player names, in turn order, each
// starting with an empty score sheet. The admin id identifies the creating
// connection and is not a player.
func (c *Controller) CreateGame(ctx context.Context, playerNames []string) (*model.Game, error) {
	if len(playerNames) == 0 {
		return nil, model.ErrNoPlayers
	}

	// Generate a unique game code; regenerate on the (unlikely) collision
	// rather than overwrite a live game
	var id model.GameID
	for {
		id = model.GameID(c.random.Code(GameCodeLength, GameCodeAlphabet))
		exists, err := c.storage.GameExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	players := make([]model.Player, len(playerNames))
	for i, name := range playerNames {
		players[i] = model.NewPlayer(model.PlayerID(uuid.NewString()), name)
	}

	game := &model.Game{
		ID:                 id,
		AdminID:            model.PlayerID(uuid.NewString()),
		Players:            players,
		CurrentRound:       1,
		CurrentPlayerIndex: 0,
		CreatedAt:          c.clock.Now(),
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.Int("player_count", len(players)),
	)

	return game, nil
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ClaimScore records a score for one player's category and returns the
// updated game. The turn index advances round-robin on every successful
// claim, whoever made it; the claimer does not have to be the player the
// index currently points at. The round counter increments once, on the
// claim that completes every category for every player.
func (c *Controller) ClaimScore(
	ctx context.Context,
	gameID model.GameID,
	playerID model.PlayerID,
	achievement model.AchievementType,
	score int,
) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	idx := game.PlayerIndex(playerID)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}

	updated := game.Clone()
	wasComplete := updated.AllAchievementsClaimed()

	player, err := c.scoring.ClaimCategory(&updated.Players[idx], achievement, score)
	if err != nil {
		return nil, err
	}
	updated.Players[idx] = *player

	updated.CurrentPlayerIndex = (updated.CurrentPlayerIndex + 1) % len(updated.Players)

	if !wasComplete && updated.AllAchievementsClaimed() {
		updated.CurrentRound++
	}

	if err := c.storage.SaveGame(ctx, updated); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("score claimed",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("achievement", string(achievement)),
		slog.Int("score", score),
		slog.Int("total", player.TotalScore),
	)

	return updated, nil
}

// GameCount returns the number of active games, for the health surface
func (c *Controller) GameCount(ctx context.Context) (int, error) {
	return c.storage.CountGames(ctx)
}
