package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"wordleclub/models"
)

// recapService implements RecapService against an external text-completion endpoint
type recapService struct {
	endpoint string
	client   *http.Client
}

// NewRecapService creates a recap service calling the given endpoint.
// An empty endpoint disables generation; every call then returns
// ErrRecapUnavailable.
func NewRecapService(endpoint string) RecapService {
	return &recapService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type recapRequest struct {
	Prompt string `json:"prompt"`
}

type recapResponse struct {
	Summary string `json:"summary"`
}

// GenerateDailyRecap asks the external service for a one-paragraph narrative
// of the day's results. Failures surface as ErrRecapUnavailable so callers
// can offer a "try again" affordance; nothing is retried here.
func (s *recapService) GenerateDailyRecap(ctx context.Context, groupName, day string, entries []models.ScoreboardEntry) (string, error) {
	if s.endpoint == "" {
		return "", ErrRecapUnavailable
	}

	body, err := json.Marshal(recapRequest{Prompt: buildRecapPrompt(groupName, day, entries)})
	if err != nil {
		return "", fmt.Errorf("failed to encode recap request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build recap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).WithField("group", groupName).Warn("Recap service unreachable")
		return "", ErrRecapUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(log.Fields{
			"group":  groupName,
			"status": resp.StatusCode,
		}).Warn("Recap service returned non-success status")
		return "", fmt.Errorf("recap service returned status %d: %w", resp.StatusCode, ErrRecapUnavailable)
	}

	var decoded recapResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode recap response: %w", ErrRecapUnavailable)
	}
	if decoded.Summary == "" {
		return "", ErrRecapUnavailable
	}

	return decoded.Summary, nil
}

// buildRecapPrompt flattens the day's results into the text block sent to the
// recap service
func buildRecapPrompt(groupName, day string, entries []models.ScoreboardEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, playful one-paragraph recap of today's Wordle results for the group %q on %s:\n", groupName, day)
	for _, entry := range entries {
		if entry.Score == models.ScoreFailed {
			fmt.Fprintf(&b, "- %s failed to solve the puzzle\n", entry.Player)
		} else {
			fmt.Fprintf(&b, "- %s solved it in %d guesses\n", entry.Player, entry.Score)
		}
	}
	return b.String()
}
