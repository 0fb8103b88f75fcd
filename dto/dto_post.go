package dto

import "campus-feed/internal/models"

// CreatePostReq is the body of POST /api/posts. authorSid, rsvp and
// reactions are not accepted from clients.
type CreatePostReq struct {
	Type        string `json:"type" validate:"required,oneof=event lostfound announcement"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`

	EventDate string `json:"eventDate"`
	Location  string `json:"location" validate:"max=200"`

	LostFoundType string `json:"lostFoundType" validate:"omitempty,oneof=lost found"`
	Item          string `json:"item" validate:"max=200"`
	LFLocation    string `json:"lfLocation" validate:"max=200"`
	ImageURL      string `json:"imageUrl" validate:"max=2048"`

	Department     string `json:"department" validate:"max=200"`
	AttachmentURL  string `json:"attachmentUrl" validate:"max=2048"`
	AttachmentType string `json:"attachmentType" validate:"omitempty,oneof=image pdf"`
}

type ListPostsResp struct {
	Items []models.Post `json:"items"`
	Total int64         `json:"total"`
}

type SeedResp struct {
	Message string        `json:"message"`
	Posts   []models.Post `json:"posts"`
}

type ReactionReq struct {
	Emoji string `json:"emoji"`
}

type ReactionResp struct {
	OK        bool             `json:"ok"`
	Reactions models.Reactions `json:"reactions"`
}

type RSVPReq struct {
	Status string `json:"status"`
}

type RSVPResp struct {
	OK   bool        `json:"ok"`
	RSVP models.RSVP `json:"rsvp"`
}
