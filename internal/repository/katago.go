package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/bootstrap"
	"github.com/mitre88/go-on-line/internal/domain/game"
)

type KatagoRepository struct {
	log       *zap.SugaredLogger
	kataGoURL string
	client    *http.Client
}

func NewKatagoRepository(cfg *bootstrap.Config, log *zap.SugaredLogger, client *http.Client) *KatagoRepository {
	if client == nil {
		client = &http.Client{}
	}
	return &KatagoRepository{
		log:       log,
		kataGoURL: cfg.KatagoBotUrl,
		client:    client,
	}
}

type SelectMoveRequest struct {
	BoardSize int      `json:"board_size"`
	Moves     []string `json:"moves"`
}

// GenerateMove asks the bot for the next move given the whole game in GTP
// coordinates, black first, with "pass" for passed turns.
func (k *KatagoRepository) GenerateMove(ctx context.Context, moves []string) (game.BotResponse, error) {
	if k.kataGoURL == "" {
		return game.BotResponse{}, fmt.Errorf("katago bot url is not configured")
	}

	reqBody, err := json.Marshal(SelectMoveRequest{
		BoardSize: game.BoardSize,
		Moves:     moves,
	})
	if err != nil {
		return game.BotResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.kataGoURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return game.BotResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.client.Do(req)
	if err != nil {
		return game.BotResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return game.BotResponse{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result game.BotResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return game.BotResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	k.log.Debugw("katago answered", "move", result.BotMove, "request_id", result.RequestID)
	return result, nil
}
