package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-feed/dto"
	"campus-feed/internal/models"
	"campus-feed/internal/moderation"
	"campus-feed/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type fakeMemes struct {
	url    string
	err    error
	prompt string
}

func (f *fakeMemes) GenerateMeme(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.url, f.err
}

type fixture struct {
	posts    *PostService
	comments *CommentService
	memes    *fakeMemes
}

func newFixture() *fixture {
	ps := repository.NewMemoryPostRepository()
	cs := repository.NewMemoryCommentRepository()
	memes := &fakeMemes{url: "data:image/png;base64,AAAA"}
	log := zap.NewNop()
	return &fixture{
		posts:    NewPostService(ps, log),
		comments: NewCommentService(ps, cs, memes, moderation.NewFilter(moderation.DefaultBannedWords, ""), log),
		memes:    memes,
	}
}

func (f *fixture) event(t *testing.T) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), "sid-1", dto.CreatePostReq{
		Type: "event", Title: "T", EventDate: "2025-01-01", Location: "Lab",
	})
	require.NoError(t, err)
	return p
}

func TestPostService_Create(t *testing.T) {
	f := newFixture()
	p := f.event(t)

	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "sid-1", p.AuthorSID)
	assert.Equal(t, models.RSVP{}, p.RSVP)
	assert.Empty(t, p.Reactions)
	require.NotNil(t, p.EventDate)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *p.EventDate)
}

func TestPostService_CreateValidation(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name string
		body dto.CreatePostReq
	}{
		{"unknown type", dto.CreatePostReq{Type: "party", Title: "x"}},
		{"missing type", dto.CreatePostReq{Title: "x"}},
		{"missing title", dto.CreatePostReq{Type: "event", Title: "   "}},
		{"bad lost found type", dto.CreatePostReq{Type: "lostfound", Title: "x", LostFoundType: "stolen"}},
		{"bad attachment type", dto.CreatePostReq{Type: "announcement", Title: "x", AttachmentType: "doc"}},
		{"bad event date", dto.CreatePostReq{Type: "event", Title: "x", EventDate: "next tuesday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.posts.Create(context.Background(), "sid", tt.body)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPostService_ListClampsAndFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.posts.Seed(ctx)
	require.NoError(t, err)

	all, err := f.posts.List(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 15, all.Total)
	assert.Len(t, all.Items, 15)

	events, err := f.posts.List(ctx, 1, 2, "event")
	require.NoError(t, err)
	assert.Len(t, events.Items, 2)
	for _, p := range events.Items {
		assert.Equal(t, models.PostTypeEvent, p.Type)
	}

	_, err = f.posts.List(ctx, 1, 10, "party")
	assert.ErrorIs(t, err, ErrValidation)

	empty, err := f.posts.List(ctx, 99, 10, "")
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestPostService_RSVPSequence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.event(t)

	r, err := f.posts.RSVP(ctx, p.ID.Hex(), "going")
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.Going)

	r, err = f.posts.RSVP(ctx, p.ID.Hex(), "going")
	require.NoError(t, err)
	assert.EqualValues(t, 2, r.Going)

	r, err = f.posts.RSVP(ctx, p.ID.Hex(), "notGoing")
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.NotGoing)
}

func TestPostService_RSVPRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ev := f.event(t)
	ann, err := f.posts.Create(ctx, "sid", dto.CreatePostReq{Type: "announcement", Title: "Holiday"})
	require.NoError(t, err)

	_, err = f.posts.RSVP(ctx, ev.ID.Hex(), "maybe")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.posts.RSVP(ctx, ann.ID.Hex(), "going")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.posts.RSVP(ctx, "000000000000000000000000", "going")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.posts.Get(ctx, ev.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.RSVP{}, got.RSVP)
}

func TestPostService_ConcurrentReactions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.event(t)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.posts.React(ctx, p.ID.Hex(), "👍")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.posts.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, n, got.Reactions["👍"])
}

func TestPostService_ReactRejectsUnsafeEmoji(t *testing.T) {
	f := newFixture()
	p := f.event(t)
	for _, e := range []string{"", " ", "a.b", "$set"} {
		_, err := f.posts.React(context.Background(), p.ID.Hex(), e)
		assert.ErrorIs(t, err, ErrValidation, e)
	}
	_, err := f.posts.React(context.Background(), "nope", "👍")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_Meme(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.event(t)

	c, err := f.comments.Create(ctx, "sid-2", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "/meme cat wearing a hat"})
	require.NoError(t, err)
	assert.Empty(t, c.Content)
	require.NotNil(t, c.MemeURL)
	assert.NotEmpty(t, *c.MemeURL)
	assert.Equal(t, "cat wearing a hat", f.memes.prompt)

	items, err := f.comments.List(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Content)
	assert.Equal(t, *c.MemeURL, *items[0].MemeURL)
}

func TestCommentService_MemeTrimsSurroundingWhitespace(t *testing.T) {
	f := newFixture()
	p := f.event(t)

	c, err := f.comments.Create(context.Background(), "sid-2", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "  /meme cat wearing a hat  "})
	require.NoError(t, err)
	assert.Empty(t, c.Content)
	require.NotNil(t, c.MemeURL)
	assert.Equal(t, "cat wearing a hat", f.memes.prompt)
}

func TestCommentService_MemeFailurePropagates(t *testing.T) {
	f := newFixture()
	p := f.event(t)
	f.memes.err = errors.New("upstream down")

	_, err := f.comments.Create(context.Background(), "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "/meme x"})
	assert.EqualError(t, err, "upstream down")

	items, err := f.comments.List(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCommentService_WriteChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.event(t)
	p2 := f.event(t)

	root, err := f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p1.ID.Hex(), Content: "hi"})
	require.NoError(t, err)

	_, err = f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: "000000000000000000000000", Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p2.ID.Hex(), Content: "x", ParentID: root.ID.Hex()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p1.ID.Hex(), Content: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	reply, err := f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p1.ID.Hex(), Content: "reply", ParentID: root.ID.Hex()})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)
}

type brokenComments struct {
	*repository.MemoryCommentRepository
}

func (brokenComments) FindByID(context.Context, bson.ObjectID) (*models.Comment, error) {
	return nil, errors.New("server selection timeout")
}

func TestCommentService_ParentLookupFailureIsNotValidation(t *testing.T) {
	ps := repository.NewMemoryPostRepository()
	cs := brokenComments{repository.NewMemoryCommentRepository()}
	posts := NewPostService(ps, zap.NewNop())
	comments := NewCommentService(ps, cs, &fakeMemes{}, moderation.NewFilter(moderation.DefaultBannedWords, ""), zap.NewNop())
	ctx := context.Background()

	p, err := posts.Create(ctx, "sid", dto.CreatePostReq{Type: "announcement", Title: "T"})
	require.NoError(t, err)

	_, err = comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "x", ParentID: bson.NewObjectID().Hex()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestCommentService_ThreadAndMasking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.event(t)

	root, err := f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "this is shit"})
	require.NoError(t, err)
	assert.Equal(t, "this is ****", root.Content)

	_, err = f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "child", ParentID: root.ID.Hex()})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "second root"})
	require.NoError(t, err)

	roots, err := f.comments.Thread(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "this is ****", roots[0].Content)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "child", roots[0].Children[0].Content)
	assert.Equal(t, "second root", roots[1].Content)
}

func TestCommentService_React(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.event(t)
	c, err := f.comments.Create(ctx, "sid", dto.CreateCommentReq{PostID: p.ID.Hex(), Content: "hi"})
	require.NoError(t, err)

	r, err := f.comments.React(ctx, c.ID.Hex(), "😂")
	require.NoError(t, err)
	assert.EqualValues(t, 1, r["😂"])

	_, err = f.comments.React(ctx, "000000000000000000000000", "😂")
	assert.ErrorIs(t, err, ErrNotFound)
}
