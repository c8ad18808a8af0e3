package response

import (
	"github.com/dicepad/dicepad/internal/model"
)

// Player is the wire representation of a player. Unclaimed categories are
// present with a null value so clients can render the full sheet.
type Player struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Achievements map[string]*int `json:"achievements"`
	TotalScore   int            `json:"totalScore"`
}

// Game is the wire representation of a game snapshot, shared by the HTTP
// API and the websocket broadcast. CreatedAt is unix milliseconds.
type Game struct {
	ID                 string   `json:"id"`
	AdminID            string   `json:"adminId"`
	Players            []Player `json:"players"`
	CurrentRound       int      `json:"currentRound"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	CreatedAt          int64    `json:"createdAt"`
}

// PlayerFromModel converts a model player to its wire representation
func PlayerFromModel(p *model.Player) Player {
	achievements := make(map[string]*int, len(p.Achievements))
	for t, v := range p.Achievements {
		if v == nil {
			achievements[string(t)] = nil
			continue
		}
		score := *v
		achievements[string(t)] = &score
	}
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Achievements: achievements,
		TotalScore:   p.TotalScore,
	}
}

// GameFromModel converts a model game to its wire representation
func GameFromModel(g *model.Game) Game {
	players := make([]Player, len(g.Players))
	for i := range g.Players {
		players[i] = PlayerFromModel(&g.Players[i])
	}
	return Game{
		ID:                 string(g.ID),
		AdminID:            string(g.AdminID),
		Players:            players,
		CurrentRound:       g.CurrentRound,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		CreatedAt:          g.CreatedAt.UnixMilli(),
	}
}
