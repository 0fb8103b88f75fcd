package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	PostsCollection    = "posts"
	CommentsCollection = "comments"
)

// EnsureFeedIndexes backs the newest-first feed listing and the
// per-post comment scan.
func EnsureFeedIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(PostsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("type_created_desc"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CommentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "post_id", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		},
		Options: options.Index().SetName("post_created_asc"),
	})
	return err
}
