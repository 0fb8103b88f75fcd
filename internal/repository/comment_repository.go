package repository

import (
	"context"
	"errors"
	"time"

	"campus-feed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	ColComments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database, name string) *CommentRepository {
	return &CommentRepository{ColComments: db.Collection(name)}
}

func (r *CommentRepository) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	_, err := r.ColComments.InsertOne(ctx, c)
	return err
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.ColComments.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByPost returns every comment of a post in creation order.
func (r *CommentRepository) ListByPost(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.ColComments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Comment{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentRepository) IncReaction(ctx context.Context, id bson.ObjectID, emoji string) (models.Reactions, error) {
	var c models.Comment
	err := r.ColComments.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"reactions." + emoji: 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c.Reactions, nil
}
