package ai

import (
	"context"
	"fmt"
	"strings"

	"campus-feed/internal/metrics"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Source string

const (
	SourceModel           Source = "model"
	SourceKeywordFallback Source = "keyword_fallback"
)

type Analysis struct {
	PostType        Category `json:"postType"`
	Confidence      float64  `json:"confidence"`
	EnhancedPrompt  string   `json:"enhancedPrompt"`
	PostDescription string   `json:"postDescription"`
	Reasoning       string   `json:"reasoning"`
	OriginalPrompt  string   `json:"originalPrompt"`
	Source          Source   `json:"source"`
}

const analyzeSystemPrompt = `You are an expert at analyzing campus-related posts and creating professional design prompts.

Your task is to:
1. Determine the post type (event, lost_found, announcement, or general)
2. Create a detailed, professional design prompt for image generation
3. Generate a compelling post description for the campus feed

Available post types:
- event: Workshops, meetings, parties, festivals, competitions, hackathons, seminars, conferences
- lost_found: Lost or found items, missing belongings, items left behind
- announcement: Official notices, academic updates, department announcements, schedules, deadlines
- general: Any other type of post

You must respond in this EXACT JSON format:
{
  "post_type": "event|lost_found|announcement|general",
  "confidence": "confidence score between 0 and 1",
  "enhanced_prompt": "Detailed design prompt for professional image generation",
  "post_description": "Compelling description for the campus feed post",
  "reasoning": "Brief explanation of why this post type was chosen"
}

The enhanced_prompt should be detailed and include:
- Professional design requirements
- Color schemes and typography
- Layout specifications
- Style guidelines
- Target audience considerations

The post_description should be:
- Engaging and informative
- Written in a friendly, campus-appropriate tone
- Include relevant details like location, time, contact info if applicable
- Be 2-4 sentences long
- Encourage engagement from other students

Respond ONLY with the JSON object, no additional text.`

// analyze is the raw upstream analysis. Any failure, including a reply
// without post_type or enhanced_prompt, is an UpstreamError.
func (c *Client) analyze(ctx context.Context, prompt string) (Analysis, error) {
	content, err := c.chat(ctx, "analyze", chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: analyzeSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze this user prompt: %q", prompt)},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return Analysis{}, err
	}

	content = strings.TrimSpace(content)
	if !gjson.Valid(content) {
		return Analysis{}, &UpstreamError{Op: "analyze", Message: "response is not valid JSON"}
	}
	parsed := gjson.Parse(content)
	postType := parsed.Get("post_type").String()
	enhanced := parsed.Get("enhanced_prompt").String()
	if postType == "" || enhanced == "" {
		return Analysis{}, &UpstreamError{Op: "analyze", Message: "Invalid response structure from OpenAI"}
	}

	out := Analysis{
		PostType:        Category(postType),
		Confidence:      0.8,
		EnhancedPrompt:  enhanced,
		PostDescription: "Post description generated by AI",
		Reasoning:       "Post type determined by AI analysis",
		OriginalPrompt:  prompt,
		Source:          SourceModel,
	}
	// confidence arrives as a number or a numeric string
	if conf := parsed.Get("confidence"); conf.Exists() && conf.Float() > 0 {
		out.Confidence = conf.Float()
	}
	if d := parsed.Get("post_description").String(); d != "" {
		out.PostDescription = d
	}
	if r := parsed.Get("reasoning").String(); r != "" {
		out.Reasoning = r
	}
	return out, nil
}

// AnalyzePrompt guesses the post type and writes an image prompt. It does
// not fail: when the provider cannot answer, the keyword vote decides.
func (c *Client) AnalyzePrompt(ctx context.Context, prompt string) Analysis {
	a, err := c.analyze(ctx, prompt)
	if err == nil {
		return a
	}
	metrics.Fallbacks.WithLabelValues("analyze").Inc()
	c.log.Warn("prompt analysis fell back to keywords", zap.Error(err))
	return fallbackAnalysis(prompt)
}
