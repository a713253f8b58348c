package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/fraud-sentinel/internal/domain"
)

// Client calls the external scoring oracle over HTTP. Every failure mode of
// the single hop (unreachable, timeout, bad status, malformed body, score
// out of range) is reported as domain.ErrScoringUnavailable; the client
// never retries.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a scoring client bound by the given timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "scoring_client"),
	}
}

// scoreRequest is the subset of transaction attributes the oracle contract
// requires. The account identifier is deliberately not sent.
type scoreRequest struct {
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
	Geo      string  `json:"geo"`
	Device   string  `json:"device"`
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

// Score returns the oracle's risk score in [0,1] for the transaction.
func (c *Client) Score(ctx context.Context, tx domain.Transaction) (float64, error) {
	payload, err := json.Marshal(scoreRequest{
		Amount:   tx.Amount,
		Merchant: tx.Merchant,
		Geo:      tx.Geo,
		Device:   tx.Device,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: marshal request: %v", domain.ErrScoringUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", domain.ErrScoringUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("scoring request failed", "error", err, "account_id", tx.AccountID)
		return 0, fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("scoring service returned non-2xx", "status", resp.StatusCode, "account_id", tx.AccountID)
		return 0, fmt.Errorf("%w: unexpected status %d", domain.ErrScoringUnavailable, resp.StatusCode)
	}

	var body scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", domain.ErrScoringUnavailable, err)
	}
	if body.Score == nil {
		return 0, fmt.Errorf("%w: response missing score field", domain.ErrScoringUnavailable)
	}
	if *body.Score < 0 || *body.Score > 1 {
		return 0, fmt.Errorf("%w: score %v outside [0,1]", domain.ErrScoringUnavailable, *body.Score)
	}

	return *body.Score, nil
}
