package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// reactionService implements ReactionService against an external image-search endpoint
type reactionService struct {
	endpoint string
	client   *http.Client
}

// NewReactionService creates a reaction image service calling the given
// endpoint. An empty endpoint disables lookups.
func NewReactionService(endpoint string) ReactionService {
	return &reactionService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type reactionRequest struct {
	IsWinner bool `json:"isWinner"`
}

type reactionResponse struct {
	GifURL *string `json:"gifUrl"`
}

// LookupReaction returns a gif URL for the outcome, or "" when none is
// available. Every failure mode degrades to "" — the caller simply shows
// nothing, never an error.
func (s *reactionService) LookupReaction(ctx context.Context, isWinner bool) string {
	if s.endpoint == "" {
		return ""
	}

	body, err := json.Marshal(reactionRequest{IsWinner: isWinner})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("Reaction image lookup failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Debug("Reaction image lookup returned non-success status")
		return ""
	}

	var decoded reactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.WithError(err).Debug("Reaction image response malformed")
		return ""
	}
	if decoded.GifURL == nil {
		return ""
	}
	return *decoded.GifURL
}
