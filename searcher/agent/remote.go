package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cascade/experiments/metrics"
	"cascade/game"
	"cascade/searcher"
)

// FindMoveResponse is the body returned by the /findmove endpoint.
type FindMoveResponse struct {
	Decision searcher.Decision    `json:"decision"`
	Metric   metrics.SearchMetric `json:"metric"`
}

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks an agent server at baseURL for its moves.
// A nil client uses http.DefaultClient.
func NewRemoteAgent(baseURL string, client *http.Client) Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteAgent{url: strings.TrimSuffix(baseURL, "/") + "/findmove", client: client}
}

// FindMove posts a snapshot of gs and decodes the server's decision.
func (a *remoteAgent) FindMove(ctx context.Context, gs *game.GameState) (searcher.Decision, metrics.SearchMetric, error) {
	body, err := json.Marshal(gs.ToSnapshot())
	if err != nil {
		return searcher.Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return searcher.Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return searcher.Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent at %s: %w", a.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusConflict {
			return searcher.Decision{}, metrics.SearchMetric{}, searcher.ErrGameOver
		}
		return searcher.Decision{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var payload FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return searcher.Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode decision: %w", err)
	}
	return payload.Decision, payload.Metric, nil
}
