package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-feed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostRepository struct {
	Col *mongo.Collection
}

func NewPostRepository(db *mongo.Database, name string) *PostRepository {
	return &PostRepository{Col: db.Collection(name)}
}

func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, p)
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page, newest first, plus the total matching the filter.
func (r *PostRepository) List(ctx context.Context, f models.PostFilter, skip, limit int64) ([]models.Post, int64, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = f.Type
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []models.Post{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.Col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// IncReaction adds one to reactions.<emoji> with a single $inc, so
// concurrent increments on the same document add up.
func (r *PostRepository) IncReaction(ctx context.Context, id bson.ObjectID, emoji string) (models.Reactions, error) {
	var p models.Post
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"reactions." + emoji: 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p.Reactions, nil
}

// IncRSVP adds one to the status counter of an event post.
func (r *PostRepository) IncRSVP(ctx context.Context, id bson.ObjectID, status string) (models.RSVP, error) {
	field := models.RSVPField(status)
	if field == "" {
		return models.RSVP{}, fmt.Errorf("unknown rsvp status %q", status)
	}

	var p models.Post
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "type": models.PostTypeEvent},
		bson.M{
			"$inc": bson.M{"rsvp." + field: 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == nil {
		return p.RSVP, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.RSVP{}, err
	}

	// tell a missing post from a non-event one
	n, cerr := r.Col.CountDocuments(ctx, bson.M{"_id": id})
	if cerr != nil {
		return models.RSVP{}, cerr
	}
	if n == 0 {
		return models.RSVP{}, ErrNotFound
	}
	return models.RSVP{}, ErrNotEvent
}

// ReplaceAll wipes the collection and inserts posts in one batch.
func (r *PostRepository) ReplaceAll(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if _, err := r.Col.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []models.Post{}, nil
	}
	docs := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.ID.IsZero() {
			p.ID = bson.NewObjectID()
		}
		docs[i] = p
	}
	if _, err := r.Col.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}
