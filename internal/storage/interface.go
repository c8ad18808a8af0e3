package storage

import (
	"context"

	"github.com/dicepad/dicepad/internal/model"
)

// Storage defines the interface for game persistence.
// The registry is the only writer; the query API and tests read.
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
	CountGames(ctx context.Context) (int, error)
}
