// internal/providers/inference/provider.go
// Package inference provides a ChatProvider backed by the platform's
// OpenAI-compatible chat completions endpoint.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/ragnote/internal/logging"
	"github.com/mwiater/ragnote/internal/providers"
)

const chatPath = "/v1/inference/chat/completions"

// Provider implements the providers.ChatProvider interface over HTTP.
type Provider struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
	debug   bool
}

// New constructs a Provider for the platform base URL. A zero timeout leaves
// requests unbounded. With debug set, prompts and completions are logged.
func New(baseURL, token string, timeout time.Duration, debug bool) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		debug:   debug,
	}
}

type chatPayload struct {
	Model       string                  `json:"model"`
	Messages    []providers.ChatMessage `json:"messages"`
	MaxTokens   *int                    `json:"max_tokens,omitempty"`
	Temperature *float64                `json:"temperature,omitempty"`
	TopP        *float64                `json:"top_p,omitempty"`
	Stream      bool                    `json:"stream"`
}

type chatCompletion struct {
	Choices []struct {
		Message      providers.ChatMessage `json:"message"`
		FinishReason string                `json:"finish_reason"`
	} `json:"choices"`
}

// Chat sends a single non-streaming completion request.
func (p *Provider) Chat(ctx context.Context, req providers.ChatRequest) (providers.ChatResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return providers.ChatResponse{}, fmt.Errorf("inference: model is empty")
	}
	if len(req.Messages) == 0 {
		return providers.ChatResponse{}, fmt.Errorf("inference: no messages to send")
	}

	payload := chatPayload{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.Params.MaxTokens,
		Temperature: req.Params.Temperature,
		TopP:        req.Params.TopP,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return providers.ChatResponse{}, fmt.Errorf("marshal chat request: %w", err)
	}

	requestID := uuid.NewString()
	if p.debug {
		logging.LogRequest("RAGNOTE->LLM", "inference", requestID, chatPath, body)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return providers.ChatResponse{}, fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return providers.ChatResponse{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return providers.ChatResponse{}, fmt.Errorf("read chat response: %w", err)
	}
	if p.debug {
		logging.LogRequest("LLM->RAGNOTE", "inference", requestID, chatPath, raw)
	} else {
		logging.LogEvent("[LLM] %s %s -> %d (request_id=%s)", req.Model, chatPath, resp.StatusCode, requestID)
	}

	if resp.StatusCode != http.StatusOK {
		return providers.ChatResponse{}, fmt.Errorf("inference: %s returned %s: %s", chatPath, resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed chatCompletion
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return providers.ChatResponse{}, fmt.Errorf("parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return providers.ChatResponse{}, fmt.Errorf("inference: response contained no choices")
	}

	choice := parsed.Choices[0]
	return providers.ChatResponse{Message: choice.Message, FinishReason: choice.FinishReason}, nil
}
