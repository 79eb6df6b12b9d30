package game

// AiMove is the advisor contract: either {"pass": true} or {"row": r, "col": c}.
// @name AiMove
type AiMove struct {
	Pass bool `json:"pass,omitempty"`
	*Position
	// Fallback is set when the move was drawn at random because the advisor
	// failed or answered with something unusable.
	Fallback bool `json:"-"`
}

func PassAiMove() AiMove {
	return AiMove{Pass: true}
}

func PlaceAiMove(pos Position) AiMove {
	return AiMove{Position: &pos}
}

// @name Turn
type Turn struct {
	Color    Stone     `json:"color" bson:"color"`
	Position *Position `json:"position,omitempty" bson:"position,omitempty"`
}

func (t Turn) IsPass() bool {
	return t.Position == nil
}

// @name MovePSV
type MovePSV struct {
	Move string `json:"move"`
	PSV  int    `json:"psv"`
}

// @name Diagnostics
type Diagnostics struct {
	BestTen []MovePSV `json:"best_ten"`
	BotMove string    `json:"bot_move"`
	Score   float64   `json:"score"`
	WinProb float64   `json:"winprob"`
}

// BotResponse is what the KataGo HTTP bot answers.
// @name BotResponse
type BotResponse struct {
	BotMove     string      `json:"bot_move"`
	Diagnostics Diagnostics `json:"diagnostics"`
	RequestID   string      `json:"request_id"`
}
