package model

import "time"

// GameID is the short human-shareable game code
type GameID string

// Game is a single scorekeeping session.
// Players is the turn order; CurrentPlayerIndex always refers into it while
// the slice is non-empty. The admin is the connection that created the game
// and is not itself a player.
type Game struct {
	ID      GameID
	AdminID PlayerID

	Players []Player

	CurrentRound       int
	CurrentPlayerIndex int

	CreatedAt time.Time
}

// PlayerIndex returns the index of the player with the given id, or -1
func (g *Game) PlayerIndex(id PlayerID) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn is indicated, or nil for an
// empty game
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// AllAchievementsClaimed reports whether every player has claimed every
// category, the condition that ends a round
func (g *Game) AllAchievementsClaimed() bool {
	for i := range g.Players {
		if !g.Players[i].AllClaimed() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the game. The registry mutates clones and
// saves them back, so readers holding an earlier snapshot never observe a
// half-applied claim.
func (g *Game) Clone() *Game {
	players := make([]Player, len(g.Players))
	for i := range g.Players {
		players[i] = g.Players[i].Clone()
	}
	return &Game{
		ID:                 g.ID,
		AdminID:            g.AdminID,
		Players:            players,
		CurrentRound:       g.CurrentRound,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		CreatedAt:          g.CreatedAt,
	}
}
