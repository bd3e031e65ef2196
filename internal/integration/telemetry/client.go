package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/observability"
)

// Recorder is the fire-and-forget analytics sink. Record must return
// immediately and must never fail the caller.
type Recorder interface {
	Record(eventName string, params map[string]any)
}

// Client ships events to a GA4-style measurement endpoint in the background.
type Client struct {
	endpoint      string
	measurementID string
	apiSecret     string
	http          *http.Client
	logger        *zap.Logger
}

// NewClient builds the sink. Without a measurement id the client stays a
// no-op that only logs at debug level.
func NewClient(endpoint, measurementID, apiSecret string, logger *zap.Logger) *Client {
	return &Client{
		endpoint:      endpoint,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		http:          &http.Client{Timeout: 5 * time.Second},
		logger:        logger,
	}
}

type payload struct {
	ClientID string  `json:"client_id"`
	Events   []event `json:"events"`
}

type event struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Record dispatches the event on a background goroutine. Failures are logged
// and counted, never returned.
func (c *Client) Record(eventName string, params map[string]any) {
	if c.logger != nil {
		c.logger.Debug("telemetry event", zap.String("event", eventName), zap.Any("params", params))
	}
	if c.measurementID == "" || c.endpoint == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.send(ctx, eventName, params); err != nil {
			observability.RecordIntegrationError("telemetry")
			if c.logger != nil {
				c.logger.Debug("telemetry send failed", zap.String("event", eventName), zap.Error(err))
			}
		}
	}()
}

func (c *Client) send(ctx context.Context, eventName string, params map[string]any) error {
	body, err := json.Marshal(payload{
		ClientID: "crm-service",
		Events:   []event{{Name: eventName, Params: params}},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s", c.endpoint, c.measurementID, c.apiSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telemetry endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
