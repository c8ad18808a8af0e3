package redis

import (
	"fmt"

	"github.com/dicepad/dicepad/internal/model"
)

// Key prefix for all dicepad data
const keyPrefix = "dicepad"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameKeyPattern matches every game key, used for counting
func gameKeyPattern() string {
	return fmt.Sprintf("%s:game:*", keyPrefix)
}
