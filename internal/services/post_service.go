package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-feed/config"
	"campus-feed/dto"
	"campus-feed/internal/metrics"
	"campus-feed/internal/models"
	"campus-feed/internal/repository"
	"campus-feed/internal/seed"

	"go.uber.org/zap"
)

type PostService struct {
	store PostStore
	log   *zap.Logger
	now   func() time.Time
}

func NewPostService(store PostStore, log *zap.Logger) *PostService {
	return &PostService{store: store, log: log, now: time.Now}
}

// Create validates the body and inserts a new post owned by sid. Counters
// always start at zero.
func (s *PostService) Create(ctx context.Context, sid string, body dto.CreatePostReq) (*models.Post, error) {
	body.Type = strings.TrimSpace(body.Type)
	body.Title = strings.TrimSpace(body.Title)
	if err := validateStruct(body); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &models.Post{
		Type:        models.PostType(body.Type),
		Title:       body.Title,
		Description: body.Description,
		AuthorSID:   sid,
		Reactions:   models.Reactions{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch p.Type {
	case models.PostTypeEvent:
		if body.EventDate != "" {
			d, err := parseEventDate(body.EventDate)
			if err != nil {
				return nil, err
			}
			p.EventDate = &d
		}
		p.Location = body.Location
	case models.PostTypeLostFound:
		p.LostFoundType = models.LostFoundType(body.LostFoundType)
		p.Item = body.Item
		p.LFLocation = body.LFLocation
		p.ImageURL = body.ImageURL
	case models.PostTypeAnnouncement:
		p.Department = body.Department
		p.AttachmentURL = body.AttachmentURL
		p.AttachmentType = models.AttachmentType(body.AttachmentType)
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	metrics.Posts.WithLabelValues(string(p.Type)).Inc()
	s.log.Debug("post created", zap.String("id", p.ID.Hex()), zap.String("type", string(p.Type)))
	return p, nil
}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: eventDate %q is not RFC3339 or YYYY-MM-DD", ErrValidation, s)
}

// List pages through the feed newest first. page starts at 1; limit is
// clamped to [1, MaxLimitPosts] and defaults to DefaultLimitPosts.
func (s *PostService) List(ctx context.Context, page, limit int, postType string) (*dto.ListPostsResp, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultLimitPosts
	}
	if limit > config.MaxLimitPosts {
		limit = config.MaxLimitPosts
	}

	var f models.PostFilter
	if postType != "" {
		t := models.PostType(postType)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown post type %q", ErrValidation, postType)
		}
		f.Type = t
	}

	skip := int64(page-1) * int64(limit)
	items, total, err := s.store.List(ctx, f, skip, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if items == nil {
		items = []models.Post{}
	}
	return &dto.ListPostsResp{Items: items, Total: total}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id, "post")
	if err != nil {
		return nil, err
	}
	p, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, translate(err, "post")
	}
	return p, nil
}

func (s *PostService) React(ctx context.Context, id, emoji string) (models.Reactions, error) {
	if err := checkEmoji(emoji); err != nil {
		return nil, err
	}
	oid, err := parseID(id, "post")
	if err != nil {
		return nil, err
	}
	r, err := s.store.IncReaction(ctx, oid, emoji)
	if err != nil {
		return nil, translate(err, "post")
	}
	metrics.Reactions.WithLabelValues("post").Inc()
	return r, nil
}

// RSVP bumps one attendance counter on an event post.
func (s *PostService) RSVP(ctx context.Context, id, status string) (models.RSVP, error) {
	if models.RSVPField(status) == "" {
		return models.RSVP{}, fmt.Errorf("%w: status must be one of going, interested, notGoing", ErrInvalidArgument)
	}
	oid, err := parseID(id, "post")
	if err != nil {
		return models.RSVP{}, err
	}
	r, err := s.store.IncRSVP(ctx, oid, status)
	if err != nil {
		return models.RSVP{}, translate(err, "post")
	}
	metrics.RSVPs.WithLabelValues(status).Inc()
	return r, nil
}

// Seed replaces the whole collection with the demo fixture.
func (s *PostService) Seed(ctx context.Context) ([]models.Post, error) {
	posts, err := seed.Posts(s.now())
	if err != nil {
		return nil, err
	}
	out, err := s.store.ReplaceAll(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}
	s.log.Info("feed reseeded", zap.Int("posts", len(out)))
	return out, nil
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrNotEvent):
		return fmt.Errorf("%w: RSVP is only allowed on event posts", ErrInvalidArgument)
	}
	return err
}
