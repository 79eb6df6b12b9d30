package game

import "time"

const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Session is one game held by the server on behalf of a browser.
type Session struct {
	ID         string     `json:"id" bson:"_id"`
	State      GameState  `json:"state" bson:"state"`
	Turns      []Turn     `json:"turns" bson:"turns"`
	Status     string     `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	Result     *Result    `json:"result,omitempty" bson:"result,omitempty"`
}

type Result struct {
	Score  Score  `json:"score" bson:"score"`
	Winner string `json:"winner" bson:"winner"` // black, white or draw
}

func NewResult(state GameState) *Result {
	score := FinalScore(state)
	winner := "draw"
	if w := score.Winner(); w != Empty {
		winner = w.String()
	}
	return &Result{Score: score, Winner: winner}
}

// SessionView is what the API returns for a session.
type SessionView struct {
	Session
	Territory Score   `json:"territory"`
	Score     Score   `json:"score"`
	GameOver  bool    `json:"game_over"`
	AiMove    *AiMove `json:"ai_move,omitempty"`
}

func NewSessionView(s Session, aiMove *AiMove) SessionView {
	return SessionView{
		Session:   s,
		Territory: CalculateScore(&s.State.Board),
		Score:     FinalScore(s.State),
		GameOver:  s.State.IsGameOver(),
		AiMove:    aiMove,
	}
}

type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ArchiveResponse struct {
	PageNum    int       `json:"page_num"`
	TotalPages int       `json:"total_pages"`
	Games      []Session `json:"games"`
}
