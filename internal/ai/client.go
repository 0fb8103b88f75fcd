// Package ai fronts the generative AI provider: post drafting, prompt
// analysis, moderation, rewriting and image generation.
package ai

import (
	"context"
	"fmt"
	"time"

	"campus-feed/internal/metrics"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"resty.dev/v3"
)

type Config struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	ImageModel      string
	ModerationModel string
	Timeout         time.Duration
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://api.openai.com/v1",
		ChatModel:       "gpt-4o-mini",
		ImageModel:      "gpt-image-1",
		ModerationModel: "omni-moderation-latest",
		Timeout:         120 * time.Second,
	}
}

// UpstreamError is any failure to get a usable answer from the provider.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Client struct {
	cfg  Config
	http *resty.Client
	log  *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}
	return &Client{cfg: cfg, http: httpClient, log: log.Named("ai")}
}

func (c *Client) Close() error {
	return c.http.Close()
}

// post sends one JSON request and returns the raw body of a 2xx answer.
// No retries: a failed call surfaces to the caller right away.
func (c *Client) post(ctx context.Context, op, path string, body any) (string, error) {
	if c.cfg.APIKey == "" {
		metrics.UpstreamCalls.WithLabelValues(op, "unconfigured").Inc()
		return "", &UpstreamError{Op: op, Message: "OpenAI API key not configured"}
	}

	started := time.Now()
	res, err := c.http.R().WithContext(ctx).SetBody(body).Post(path)
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues(op, "transport_error").Inc()
		c.log.Warn("upstream request failed", zap.String("op", op), zap.Error(err))
		return "", &UpstreamError{Op: op, Message: err.Error(), Err: err}
	}

	raw := res.String()
	if res.IsError() {
		msg := gjson.Get(raw, "error.message").String()
		if msg == "" {
			msg = res.Status()
		}
		metrics.UpstreamCalls.WithLabelValues(op, "http_error").Inc()
		c.log.Warn("upstream returned error",
			zap.String("op", op),
			zap.Int("status", res.StatusCode()),
			zap.String("message", msg))
		return "", &UpstreamError{Op: op, StatusCode: res.StatusCode(), Message: msg}
	}

	metrics.UpstreamCalls.WithLabelValues(op, "ok").Inc()
	c.log.Debug("upstream call done", zap.String("op", op), zap.Duration("took", time.Since(started)))
	return raw, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

// chat runs a system+user completion and returns the first choice's text.
func (c *Client) chat(ctx context.Context, op string, req chatRequest) (string, error) {
	raw, err := c.post(ctx, op, "/chat/completions", req)
	if err != nil {
		return "", err
	}
	content := gjson.Get(raw, "choices.0.message.content")
	if !content.Exists() {
		return "", &UpstreamError{Op: op, Message: "No response received from OpenAI"}
	}
	return content.String(), nil
}
