package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"leadrelay/internal/config"
	"leadrelay/internal/constants"
	"leadrelay/internal/logger"
)

// Client posts flat records to a Sheety-style spreadsheet API. The
// record is filtered to the allow-listed keys and wrapped under the
// resource name: {resource: {key: value, ...}}.
//
// A client built from an empty URL is disabled: Post skips the send
// and reports failure without touching the network.
type Client struct {
	resource  string
	url       string
	keys      []string
	authToken string
	client    *http.Client
	log       logger.Logger
}

func NewClient(cfg config.SheetyConfig, log logger.Logger) *Client {
	return &Client{
		resource:  cfg.Resource,
		url:       cfg.URL,
		keys:      cfg.Keys,
		authToken: cfg.AuthToken,
		client: &http.Client{
			Timeout: constants.DeliveryTimeout,
		},
		log: log,
	}
}

// Enabled reports whether the client has a delivery endpoint.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Keys returns the allow-listed field names.
func (c *Client) Keys() []string {
	return c.keys
}

// Post sends one record. It returns true iff the API answered 2xx;
// transport errors, non-2xx statuses and encoding failures all come
// back as false. It never returns an error and never panics; a
// failed delivery is terminal for the current webhook by contract.
func (c *Client) Post(ctx context.Context, record map[string]string) bool {
	if !c.Enabled() {
		return false
	}

	// Allow-listed keys absent from the record are omitted entirely,
	// not sent as empty strings.
	filtered := make(map[string]string)
	for _, key := range c.keys {
		if value, ok := record[key]; ok {
			filtered[key] = value
		}
	}

	body, err := json.Marshal(map[string]map[string]string{
		c.resource: filtered,
	})
	if err != nil {
		c.log.ErrorwCtx(ctx, "Failed to encode delivery body", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.ErrorwCtx(ctx, "Failed to create delivery request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WarnwCtx(ctx, "Delivery request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		c.log.WarnwCtx(ctx, "Delivery rejected", "status", resp.StatusCode)
		return false
	}

	return true
}
