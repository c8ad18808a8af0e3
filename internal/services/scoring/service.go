package scoring

import (
	"sort"

	"github.com/dicepad/dicepad/internal/model"
)

// Bonus values
const (
	// NumberBonus is granted when all six number categories are claimed
	// and together reach NumberBonusThreshold points
	NumberBonus          = 50
	NumberBonusThreshold = 63

	// PokerBonus is granted whenever the poker category is claimed,
	// whatever its recorded value
	PokerBonus = 50
)

// Service computes totals and applies category claims.
// It is pure: no I/O and no state of its own.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// TotalScore computes a player's total from their claimed categories.
// The total is always derived from the full score sheet rather than patched
// incrementally, so a recompute after any claim cannot drift.
func (s *Service) TotalScore(p *model.Player) int {
	total := 0
	for _, score := range p.Achievements {
		if score != nil {
			total += *score
		}
	}

	// Upper-section bonus: all six number categories claimed and summing
	// to at least the threshold
	numberSum := 0
	numbersComplete := true
	for _, t := range model.NumberAchievements {
		score := p.Achievements[t]
		if score == nil {
			numbersComplete = false
			break
		}
		numberSum += *score
	}
	if numbersComplete && numberSum >= NumberBonusThreshold {
		total += NumberBonus
	}

	// Poker bonus applies on claim, even at zero points
	if p.Claimed(model.AchievementPoker) {
		total += PokerBonus
	}

	return total
}

// ClaimCategory records a score for an unclaimed category and returns the
// updated player. The original player is never mutated. Claims are
// irreversible: a second claim on the same category fails with
// ErrAlreadyClaimed. The value itself is trusted; dice legality is the
// caller's concern.
func (s *Service) ClaimCategory(p *model.Player, t model.AchievementType, score int) (*model.Player, error) {
	if !t.Valid() {
		return nil, model.ErrUnknownAchievement
	}
	if p.Claimed(t) {
		return nil, model.ErrAlreadyClaimed
	}

	updated := p.Clone()
	v := score
	updated.Achievements[t] = &v
	updated.TotalScore = s.TotalScore(&updated)

	return &updated, nil
}

// AvailableCategories returns the categories the player has not yet claimed,
// in canonical scoreboard order
func (s *Service) AvailableCategories(p *model.Player) []model.AchievementType {
	available := make([]model.AchievementType, 0, len(model.AchievementTypes))
	for _, t := range model.AchievementTypes {
		if !p.Claimed(t) {
			available = append(available, t)
		}
	}
	return available
}

// Rank returns the players ordered by total score descending. The sort is
// stable: tied players keep their relative input order.
func (s *Service) Rank(players []model.Player) []model.Player {
	ranked := make([]model.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}

// Interface for dependency injection
type ServiceInterface interface {
	TotalScore(p *model.Player) int
	ClaimCategory(p *model.Player, t model.AchievementType, score int) (*model.Player, error)
	AvailableCategories(p *model.Player) []model.AchievementType
	Rank(players []model.Player) []model.Player
}

var _ ServiceInterface = (*Service)(nil)
