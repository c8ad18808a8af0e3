package model

// AchievementType identifies one of the fifteen scoring categories
type AchievementType string

const (
	AchievementOnes        AchievementType = "ones"
	AchievementTwos        AchievementType = "twos"
	AchievementThrees      AchievementType = "threes"
	AchievementFours       AchievementType = "fours"
	AchievementFives       AchievementType = "fives"
	AchievementSixes       AchievementType = "sixes"
	AchievementPair        AchievementType = "pair"
	AchievementTwoPairs    AchievementType = "two-pairs"
	AchievementThreeOfKind AchievementType = "three-of-kind"
	AchievementFourOfKind  AchievementType = "four-of-kind"
	AchievementSmallStr    AchievementType = "small-straight"
	AchievementLargeStr    AchievementType = "large-straight"
	AchievementPoker       AchievementType = "poker"
	AchievementFullHouse   AchievementType = "full-house"
	AchievementChance      AchievementType = "chance"
)

// AchievementTypes lists every category in canonical scoreboard order.
// This order is the one clients render and the one AvailableCategories uses.
var AchievementTypes = []AchievementType{
	AchievementOnes,
	AchievementTwos,
	AchievementThrees,
	AchievementFours,
	AchievementFives,
	AchievementSixes,
	AchievementPair,
	AchievementTwoPairs,
	AchievementThreeOfKind,
	AchievementFourOfKind,
	AchievementSmallStr,
	AchievementLargeStr,
	AchievementPoker,
	AchievementFullHouse,
	AchievementChance,
}

// NumberAchievements is the upper section (ones through sixes), the
// categories that count towards the 63-point bonus.
var NumberAchievements = []AchievementType{
	AchievementOnes,
	AchievementTwos,
	AchievementThrees,
	AchievementFours,
	AchievementFives,
	AchievementSixes,
}

// Valid reports whether t is one of the fifteen known categories
func (t AchievementType) Valid() bool {
	for _, known := range AchievementTypes {
		if t == known {
			return true
		}
	}
	return false
}
