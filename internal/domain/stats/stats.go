package stats

import "time"

const (
	ActionNewGame   = "newGame"
	ActionNewPlayer = "newPlayer"
)

type Stats struct {
	TotalGames   int64     `json:"totalGames"`
	TotalPlayers int64     `json:"totalPlayers"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

type UpdateRequest struct {
	Action string `json:"action"`
}
