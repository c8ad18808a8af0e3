package model

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Player is one participant's score sheet.
// Achievements always holds all fifteen categories; a nil value means the
// category is still unclaimed. TotalScore is a cache recomputed by the
// scoring engine after every claim, never patched incrementally.
type Player struct {
	ID           PlayerID
	Name         string
	Achievements map[AchievementType]*int
	TotalScore   int
}

// NewPlayer creates a player with an empty score sheet
func NewPlayer(id PlayerID, name string) Player {
	achievements := make(map[AchievementType]*int, len(AchievementTypes))
	for _, t := range AchievementTypes {
		achievements[t] = nil
	}
	return Player{
		ID:           id,
		Name:         name,
		Achievements: achievements,
	}
}

// Claimed reports whether the category holds a recorded value
func (p *Player) Claimed(t AchievementType) bool {
	return p.Achievements[t] != nil
}

// AllClaimed reports whether every category has been claimed
func (p *Player) AllClaimed() bool {
	for _, t := range AchievementTypes {
		if p.Achievements[t] == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the player
func (p *Player) Clone() Player {
	achievements := make(map[AchievementType]*int, len(p.Achievements))
	for t, score := range p.Achievements {
		if score == nil {
			achievements[t] = nil
			continue
		}
		v := *score
		achievements[t] = &v
	}
	return Player{
		ID:           p.ID,
		Name:         p.Name,
		Achievements: achievements,
		TotalScore:   p.TotalScore,
	}
}
