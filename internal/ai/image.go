package ai

import (
	"context"
	"fmt"
	"strings"

	"campus-feed/internal/metrics"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const DefaultImageSize = "1024x1024"

var ImageSizes = []string{"1024x1024", "1792x1024", "1024x1792"}

func ValidImageSize(size string) bool {
	for _, s := range ImageSizes {
		if s == size {
			return true
		}
	}
	return false
}

type Image struct {
	ImageURL      string    `json:"imageUrl"`
	RevisedPrompt string    `json:"revisedPrompt"`
	FinalPrompt   string    `json:"finalPrompt"`
	Analysis      *Analysis `json:"analysis,omitempty"`
}

// generate calls the image endpoint and returns a data URL for base64
// payloads or the remote URL otherwise.
func (c *Client) generate(ctx context.Context, op, prompt, size string) (url, revised string, err error) {
	raw, err := c.post(ctx, op, "/images/generations", map[string]any{
		"model":  c.cfg.ImageModel,
		"prompt": prompt,
		"n":      1,
		"size":   size,
	})
	if err != nil {
		return "", "", err
	}

	first := gjson.Get(raw, "data.0")
	if !first.Exists() {
		return "", "", &UpstreamError{Op: op, Message: "No image data received from API"}
	}
	revised = first.Get("revised_prompt").String()
	if b64 := first.Get("b64_json").String(); b64 != "" {
		return "data:image/png;base64," + b64, revised, nil
	}
	if u := first.Get("url").String(); u != "" {
		return u, revised, nil
	}
	return "", "", &UpstreamError{Op: op, Message: "No image URL or base64 data received from API"}
}

// GenerateImage renders prompt at size. With enhance set the prompt is first
// rewritten by the model's analysis, or, if that fails, by the local
// vote and the notice-board templates.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string, enhance bool) (*Image, error) {
	if size == "" {
		size = DefaultImageSize
	}
	if !ValidImageSize(size) {
		return nil, fmt.Errorf("unsupported image size %q", size)
	}

	out := &Image{FinalPrompt: prompt}
	if enhance {
		a, err := c.analyze(ctx, prompt)
		if err == nil {
			out.FinalPrompt = a.EnhancedPrompt
			out.Analysis = &a
		} else {
			metrics.Fallbacks.WithLabelValues("image").Inc()
			c.log.Warn("image prompt enhancement fell back to keywords", zap.Error(err))
			out.FinalPrompt = enhanceForCategory(prompt, Vote(prompt))
		}
	}

	url, revised, err := c.generate(ctx, "image", out.FinalPrompt, size)
	if err != nil {
		return nil, err
	}
	out.ImageURL = url
	out.RevisedPrompt = revised
	if out.RevisedPrompt == "" {
		out.RevisedPrompt = "Image generated successfully"
	}
	return out, nil
}

// GenerateMeme returns an image URL for a /meme comment.
func (c *Client) GenerateMeme(ctx context.Context, prompt string) (string, error) {
	full := "Create a meme image for this idea. Use classic meme style when appropriate. Idea: " + strings.TrimSpace(prompt)
	url, _, err := c.generate(ctx, "meme", full, DefaultImageSize)
	return url, err
}
