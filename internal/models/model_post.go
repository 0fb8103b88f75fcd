package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PostType string

const (
	PostTypeEvent        PostType = "event"
	PostTypeLostFound    PostType = "lostfound"
	PostTypeAnnouncement PostType = "announcement"
)

var PostTypes = []PostType{PostTypeEvent, PostTypeLostFound, PostTypeAnnouncement}

func (t PostType) Valid() bool {
	switch t {
	case PostTypeEvent, PostTypeLostFound, PostTypeAnnouncement:
		return true
	}
	return false
}

type LostFoundType string

const (
	Lost  LostFoundType = "lost"
	Found LostFoundType = "found"
)

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentPDF   AttachmentType = "pdf"
)

// RSVP status names as they appear on the wire.
const (
	RSVPGoing      = "going"
	RSVPInterested = "interested"
	RSVPNotGoing   = "notGoing"
)

// RSVPField maps a wire status to its document field, or "" when unknown.
func RSVPField(status string) string {
	switch status {
	case RSVPGoing:
		return "going"
	case RSVPInterested:
		return "interested"
	case RSVPNotGoing:
		return "not_going"
	}
	return ""
}

type RSVP struct {
	Going      int64 `json:"going" bson:"going"`
	Interested int64 `json:"interested" bson:"interested"`
	NotGoing   int64 `json:"notGoing" bson:"not_going"`
}

// Inc bumps the counter named by a wire status. Unknown statuses are ignored.
func (r *RSVP) Inc(status string) {
	switch status {
	case RSVPGoing:
		r.Going++
	case RSVPInterested:
		r.Interested++
	case RSVPNotGoing:
		r.NotGoing++
	}
}

// Reactions maps an emoji to its count. Keys appear on first increment.
type Reactions map[string]int64

func (r Reactions) Clone() Reactions {
	out := make(Reactions, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Post struct {
	ID          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type        PostType      `json:"type" bson:"type"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	AuthorSID   string        `json:"authorSid" bson:"author_sid"`

	// event
	EventDate *time.Time `json:"eventDate,omitempty" bson:"event_date,omitempty"`
	Location  string     `json:"location,omitempty" bson:"location,omitempty"`
	RSVP      RSVP       `json:"rsvp" bson:"rsvp"`

	// lost & found
	LostFoundType LostFoundType `json:"lostFoundType,omitempty" bson:"lost_found_type,omitempty"`
	Item          string        `json:"item,omitempty" bson:"item,omitempty"`
	LFLocation    string        `json:"lfLocation,omitempty" bson:"lf_location,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty" bson:"image_url,omitempty"`

	// announcement
	Department     string         `json:"department,omitempty" bson:"department,omitempty"`
	AttachmentURL  string         `json:"attachmentUrl,omitempty" bson:"attachment_url,omitempty"`
	AttachmentType AttachmentType `json:"attachmentType,omitempty" bson:"attachment_type,omitempty"`

	Reactions Reactions `json:"reactions" bson:"reactions"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// PostFilter narrows a feed listing. Zero value lists everything.
type PostFilter struct {
	Type PostType
}
