package ai

import (
	"context"
	"encoding/json"
	"strings"
)

// Draft is a structured post suggestion. Fields the model could not fill
// stay nil.
type Draft struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EventDate      *string `json:"eventDate"`
	Location       *string `json:"location"`
	LostFoundType  *string `json:"lostFoundType"`
	Item           *string `json:"item"`
	Department     *string `json:"department"`
	AttachmentType *string `json:"attachmentType"`
}

const classifySystemPrompt = `You turn a student's one-line prompt into a structured post draft.
Output STRICT JSON with this shape:
{
  "type": "event" | "lostfound" | "announcement",
  "title": string,
  "description": string,
  "eventDate": string | null,        // ISO when type=event
  "location": string | null,         // for event/lostfound
  "lostFoundType": "lost" | "found" | null,
  "item": string | null,
  "department": string | null,
  "attachmentType": "image" | "pdf" | null
}
If ambiguous, make your best guess and keep missing fields as null. Keep title concise.
`

// Classify asks the model for a post draft. There is no local fallback.
func (c *Client) Classify(ctx context.Context, prompt string) (*Draft, error) {
	content, err := c.chat(ctx, "classify", chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &d); err != nil {
		return nil, &UpstreamError{Op: "classify", Message: "malformed draft: " + err.Error(), Err: err}
	}
	return &d, nil
}
