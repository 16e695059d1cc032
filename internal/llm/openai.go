package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadrelay/internal/config"
	"leadrelay/internal/constants"
	"leadrelay/internal/lead"
)

const maxErrorBodyLen = 512

// OpenAIClient calls the chat completions API with a strict JSON
// schema response format and decodes the completion into a
// lead.Analysis. One outbound call per Extract, no retries.
type OpenAIClient struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = constants.DefaultExtractionTimeout
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultOpenAIBaseURL
	}

	return &OpenAIClient{
		client:  &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Extract(ctx context.Context, system, user string) (lead.Analysis, error) {
	if c.apiKey == "" {
		return lead.Analysis{}, newExtractionError("api key is not configured", nil)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   lead.SchemaName,
				Strict: true,
				Schema: lead.ResponseSchema(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return lead.Analysis{}, newExtractionError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return lead.Analysis{}, newExtractionError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return lead.Analysis{}, newExtractionError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return lead.Analysis{}, newExtractionError(
			fmt.Sprintf("api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return lead.Analysis{}, newExtractionError("failed to decode response", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return lead.Analysis{}, newExtractionError("empty completion", nil)
	}

	// The schema is strict on the provider side, but the decoder
	// rejects unknown fields anyway so a drifting backend cannot
	// smuggle unexpected keys into the delivery record.
	decoder := json.NewDecoder(strings.NewReader(completion.Choices[0].Message.Content))
	decoder.DisallowUnknownFields()

	var analysis lead.Analysis
	if err := decoder.Decode(&analysis); err != nil {
		return lead.Analysis{}, newExtractionError("malformed structured output", err)
	}

	return analysis, nil
}
