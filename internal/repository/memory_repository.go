package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus-feed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryPostRepository keeps posts in process memory. It serves the
// STORE_DRIVER=memory mode and the HTTP tests.
type MemoryPostRepository struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]*models.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: map[bson.ObjectID]*models.Post{}}
}

func clonePost(p *models.Post) models.Post {
	out := *p
	out.Reactions = p.Reactions.Clone()
	if p.EventDate != nil {
		d := *p.EventDate
		out.EventDate = &d
	}
	return out
}

func (r *MemoryPostRepository) Insert(_ context.Context, p *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if _, exists := r.posts[p.ID]; exists {
		return fmt.Errorf("duplicate post id %s", p.ID.Hex())
	}
	cp := clonePost(p)
	r.posts[p.ID] = &cp
	return nil
}

func (r *MemoryPostRepository) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := clonePost(p)
	return &cp, nil
}

func (r *MemoryPostRepository) List(_ context.Context, f models.PostFilter, skip, limit int64) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		all = append(all, clonePost(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.Hex() > all[j].ID.Hex()
	})

	total := int64(len(all))
	if skip >= total {
		return []models.Post{}, total, nil
	}
	end := total
	if limit > 0 && skip+limit < total {
		end = skip + limit
	}
	return all[skip:end], total, nil
}

func (r *MemoryPostRepository) IncReaction(_ context.Context, id bson.ObjectID, emoji string) (models.Reactions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Reactions == nil {
		p.Reactions = models.Reactions{}
	}
	p.Reactions[emoji]++
	p.UpdatedAt = time.Now().UTC()
	return p.Reactions.Clone(), nil
}

func (r *MemoryPostRepository) IncRSVP(_ context.Context, id bson.ObjectID, status string) (models.RSVP, error) {
	if models.RSVPField(status) == "" {
		return models.RSVP{}, fmt.Errorf("unknown rsvp status %q", status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return models.RSVP{}, ErrNotFound
	}
	if p.Type != models.PostTypeEvent {
		return models.RSVP{}, ErrNotEvent
	}
	p.RSVP.Inc(status)
	p.UpdatedAt = time.Now().UTC()
	return p.RSVP, nil
}

func (r *MemoryPostRepository) ReplaceAll(_ context.Context, posts []models.Post) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = make(map[bson.ObjectID]*models.Post, len(posts))
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		p := clonePost(&posts[i])
		if p.ID.IsZero() {
			p.ID = bson.NewObjectID()
		}
		stored := clonePost(&p)
		r.posts[p.ID] = &stored
		out = append(out, p)
	}
	return out, nil
}

// MemoryCommentRepository is the in-process counterpart of CommentRepository.
type MemoryCommentRepository struct {
	mu       sync.Mutex
	comments []*models.Comment
	byID     map[bson.ObjectID]*models.Comment
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{byID: map[bson.ObjectID]*models.Comment{}}
}

func cloneComment(c *models.Comment) models.Comment {
	out := *c
	out.Reactions = c.Reactions.Clone()
	if c.ParentID != nil {
		p := *c.ParentID
		out.ParentID = &p
	}
	if c.MemeURL != nil {
		u := *c.MemeURL
		out.MemeURL = &u
	}
	return out
}

func (r *MemoryCommentRepository) Insert(_ context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("duplicate comment id %s", c.ID.Hex())
	}
	cp := cloneComment(c)
	r.comments = append(r.comments, &cp)
	r.byID[c.ID] = &cp
	return nil
}

func (r *MemoryCommentRepository) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneComment(c)
	return &cp, nil
}

func (r *MemoryCommentRepository) ListByPost(_ context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, cloneComment(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryCommentRepository) IncReaction(_ context.Context, id bson.ObjectID, emoji string) (models.Reactions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if c.Reactions == nil {
		c.Reactions = models.Reactions{}
	}
	c.Reactions[emoji]++
	c.UpdatedAt = time.Now().UTC()
	return c.Reactions.Clone(), nil
}
