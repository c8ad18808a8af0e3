package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Achievements map[string]*int `json:"achievements"`
	TotalScore   int             `json:"totalScore"`
}

// Game response type
type Game struct {
	ID                 string   `json:"id"`
	AdminID            string   `json:"adminId"`
	Players            []Player `json:"players"`
	CurrentRound       int      `json:"currentRound"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	CreatedAt          int64    `json:"createdAt"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Games  int    `json:"games"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Round: %d\n", g.CurrentRound)
	fmt.Printf("Created: %s\n", time.UnixMilli(g.CreatedAt).Format("2006-01-02 15:04:05"))
	fmt.Printf("Players (%d):\n", len(g.Players))

	for i, p := range g.Players {
		turnStr := ""
		if i == g.CurrentPlayerIndex {
			turnStr = " [to play]"
		}
		fmt.Printf("  - %s (%s): %d points%s\n", p.Name, p.ID, p.TotalScore, turnStr)

		claimed := make([]string, 0, len(p.Achievements))
		for name, score := range p.Achievements {
			if score != nil {
				claimed = append(claimed, fmt.Sprintf("%s=%d", name, *score))
			}
		}
		sort.Strings(claimed)
		if len(claimed) > 0 {
			fmt.Printf("    claimed: %v\n", claimed)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Games: %d\n", h.Games)
}
