package dto

import "campus-feed/internal/ai"

type PromptReq struct {
	Prompt string `json:"prompt"`
}

type TextReq struct {
	Text string `json:"text"`
}

type DraftResp struct {
	Draft *ai.Draft `json:"draft"`
}

type RewriteResp struct {
	Rewritten string `json:"rewritten"`
}

// ImageReq asks for a generated image. Enhance defaults to true when omitted.
type ImageReq struct {
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Enhance *bool  `json:"enhance"`
}

type UploadResp struct {
	URL string `json:"url"`
}

type HealthResp struct {
	OK bool `json:"ok"`
}
