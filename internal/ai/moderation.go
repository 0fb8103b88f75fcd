package ai

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"
)

type ToxicityResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}

func (c *Client) CheckToxicity(ctx context.Context, text string) (*ToxicityResult, error) {
	raw, err := c.post(ctx, "toxicity", "/moderations", map[string]any{
		"model": c.cfg.ModerationModel,
		"input": text,
	})
	if err != nil {
		return nil, err
	}

	outcome := gjson.Get(raw, "results.0")
	res := &ToxicityResult{
		Flagged:    outcome.Get("flagged").Bool(),
		Categories: map[string]bool{},
	}
	outcome.Get("categories").ForEach(func(k, v gjson.Result) bool {
		res.Categories[k.String()] = v.Bool()
		return true
	})
	return res, nil
}

const rewriteSystemPrompt = "Rewrite the text to be friendly, respectful, and non-toxic while keeping the meaning."

func (c *Client) SoftenRewrite(ctx context.Context, text string) (string, error) {
	content, err := c.chat(ctx, "rewrite", chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: rewriteSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
