package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-feed/dto"
	"campus-feed/internal/metrics"
	"campus-feed/internal/models"
	"campus-feed/internal/repository"
	"campus-feed/internal/thread"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// MemePrefix turns a comment into an image-only reply.
const MemePrefix = "/meme "

type CommentService struct {
	posts    PostStore
	comments CommentStore
	memes    MemeGenerator
	mask     Masker
	log      *zap.Logger
	now      func() time.Time
}

func NewCommentService(posts PostStore, comments CommentStore, memes MemeGenerator, mask Masker, log *zap.Logger) *CommentService {
	return &CommentService{
		posts:    posts,
		comments: comments,
		memes:    memes,
		mask:     mask,
		log:      log,
		now:      time.Now,
	}
}

// Create stores a comment by sid. A "/meme <prompt>" body is replaced by a
// generated image and stored with empty content.
func (s *CommentService) Create(ctx context.Context, sid string, body dto.CreateCommentReq) (*models.Comment, error) {
	if err := validateStruct(body); err != nil {
		return nil, err
	}
	postID, err := parseID(body.PostID, "post")
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, translate(err, "post")
	}

	var parentID *bson.ObjectID
	if strings.TrimSpace(body.ParentID) != "" {
		pid, err := bson.ObjectIDFromHex(strings.TrimSpace(body.ParentID))
		if err != nil {
			return nil, fmt.Errorf("%w: parentId is not a valid id", ErrValidation)
		}
		parent, err := s.comments.FindByID(ctx, pid)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("find parent comment: %w", err)
		}
		if err != nil || parent.PostID != postID {
			return nil, fmt.Errorf("%w: parentId must reference a comment on the same post", ErrValidation)
		}
		parentID = &pid
	}

	now := s.now().UTC()
	c := &models.Comment{
		PostID:    postID,
		AuthorSID: sid,
		Content:   body.Content,
		ParentID:  parentID,
		Reactions: models.Reactions{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	kind := "text"
	if trimmed := strings.TrimSpace(body.Content); strings.HasPrefix(trimmed, MemePrefix) {
		prompt := strings.TrimSpace(strings.TrimPrefix(trimmed, MemePrefix))
		if prompt == "" {
			return nil, fmt.Errorf("%w: /meme needs a prompt", ErrValidation)
		}
		url, err := s.memes.GenerateMeme(ctx, prompt)
		if err != nil {
			return nil, err
		}
		c.Content = ""
		c.MemeURL = &url
		kind = "meme"
	} else if strings.TrimSpace(c.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	metrics.Comments.WithLabelValues(kind).Inc()
	s.log.Debug("comment created",
		zap.String("id", c.ID.Hex()),
		zap.String("post", postID.Hex()),
		zap.String("kind", kind),
	)
	s.maskOne(c)
	return c, nil
}

// List returns a post's comments in creation order.
func (s *CommentService) List(ctx context.Context, postID string) ([]models.Comment, error) {
	oid, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	items, err := s.comments.ListByPost(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return lo.Map(items, func(c models.Comment, _ int) models.Comment {
		s.maskOne(&c)
		return c
	}), nil
}

// Thread returns a post's comments as a reply forest.
func (s *CommentService) Thread(ctx context.Context, postID string) ([]*thread.Node, error) {
	items, err := s.List(ctx, postID)
	if err != nil {
		return nil, err
	}
	return thread.Build(items), nil
}

func (s *CommentService) React(ctx context.Context, id, emoji string) (models.Reactions, error) {
	if err := checkEmoji(emoji); err != nil {
		return nil, err
	}
	oid, err := parseID(id, "comment")
	if err != nil {
		return nil, err
	}
	r, err := s.comments.IncReaction(ctx, oid, emoji)
	if err != nil {
		return nil, translate(err, "comment")
	}
	metrics.Reactions.WithLabelValues("comment").Inc()
	return r, nil
}

func (s *CommentService) maskOne(c *models.Comment) {
	if s.mask != nil && c.Content != "" {
		c.Content = s.mask.Mask(c.Content)
	}
}
