package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardroom/zhajinhua/internal/game"
)

const maxCommentaryBytes = 4096

// Commentator asks an external text service for one-line table banter.
// It is strictly best-effort: any failure yields an empty string and the
// game carries on without it.
type Commentator struct {
	url    string
	model  string
	client *http.Client
	logger *log.Logger
}

// NewCommentator builds a client from config. Returns nil when commentary
// is disabled or unconfigured, which callers treat as "no commentary".
func NewCommentator(cfg *CommentaryConfig, logger *log.Logger) *Commentator {
	if cfg == nil || !cfg.Enabled || cfg.URL == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Commentator{
		url:    cfg.URL,
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("commentary"),
	}
}

type commentaryRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

type commentaryResponse struct {
	Text string `json:"text"`
}

// Generate posts the hand summary and returns the service's one-liner,
// or "" on any failure.
func (c *Commentator) Generate(ctx context.Context, summary string) string {
	body, err := json.Marshal(commentaryRequest{Prompt: summary, Model: c.model})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Commentary request failed", "error", err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Commentary service error", "status", resp.StatusCode)
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCommentaryBytes))
	if err != nil {
		return ""
	}

	var parsed commentaryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Text)
}

// SummarizeForCommentary renders the situation after an action as a short
// prompt. Hole cards are never included; the service sees only what a
// railbird would.
func SummarizeForCommentary(t *game.Table, actorID int, action game.Action) string {
	var b strings.Builder

	actor := t.Player(actorID)
	name := fmt.Sprintf("seat %d", actorID)
	if actor != nil {
		name = actor.Name
	}
	fmt.Fprintf(&b, "%s chose %s. ", name, strings.ToLower(action.String()))
	fmt.Fprintf(&b, "Pot %d, bet unit %d, %d players still in.", t.Pot, t.BetUnit, t.PlayingCount())

	if t.Phase == game.Showdown {
		if winner := t.Winner(); winner != nil {
			fmt.Fprintf(&b, " %s wins the hand.", winner.Name)
		}
	}
	return b.String()
}
