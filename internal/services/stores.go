package services

import (
	"context"

	"campus-feed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PostStore is satisfied by repository.PostRepository and its memory twin.
type PostStore interface {
	Insert(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	List(ctx context.Context, f models.PostFilter, skip, limit int64) ([]models.Post, int64, error)
	IncReaction(ctx context.Context, id bson.ObjectID, emoji string) (models.Reactions, error)
	IncRSVP(ctx context.Context, id bson.ObjectID, status string) (models.RSVP, error)
	ReplaceAll(ctx context.Context, posts []models.Post) ([]models.Post, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error)
	IncReaction(ctx context.Context, id bson.ObjectID, emoji string) (models.Reactions, error)
}

// MemeGenerator turns a prompt into an image URL (data URL or remote).
type MemeGenerator interface {
	GenerateMeme(ctx context.Context, prompt string) (string, error)
}

// Masker rewrites user text for display.
type Masker interface {
	Mask(s string) string
}
