package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID  `json:"_id" bson:"_id,omitempty"`
	PostID    bson.ObjectID  `json:"postId" bson:"post_id"`
	AuthorSID string         `json:"authorSid" bson:"author_sid"`
	Content   string         `json:"content" bson:"content"`
	ParentID  *bson.ObjectID `json:"parentId" bson:"parent_id"`
	MemeURL   *string        `json:"memeUrl" bson:"meme_url"`
	Reactions Reactions      `json:"reactions" bson:"reactions"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updated_at"`
}
