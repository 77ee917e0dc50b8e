// Package model calls a remote severity classifier over HTTP.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Client implements domain.Classifier by POSTing the feature vector to a
// model server.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a classifier client for the model endpoint at url.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

// Predict sends one feature vector and returns the model's label. Any
// transport failure or non-200 status is reported as domain.ErrModelUnavailable.
func (c *Client) Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	body, err := json.Marshal(predictRequest{Features: features[:]})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("encode features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return domain.Prediction{}, fmt.Errorf("%w: status %d: %s", domain.ErrModelUnavailable, resp.StatusCode, msg)
	}

	var pred domain.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return domain.Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	if pred.Label == "" {
		return domain.Prediction{}, errors.New("decode prediction: empty label")
	}
	c.logger.Debug("prediction received", "label", pred.Label)
	return pred, nil
}
