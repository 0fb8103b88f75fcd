// Package feedclient talks to the feed REST API and renders it for a terminal.
package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"campus-feed/dto"
	"campus-feed/internal/ai"
	"campus-feed/internal/models"
	"campus-feed/internal/thread"

	"github.com/samber/lo"
	"resty.dev/v3"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

type Client struct {
	client *resty.Client
}

// New returns a client that keeps the server's sid cookie across calls.
func New(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json")
	return &Client{client: c}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}
	var body dto.ErrorResponse
	_ = json.Unmarshal([]byte(res.String()), &body)
	if body.Error == "" {
		body.Error = res.Status()
	}
	return &APIError{Status: res.StatusCode(), Message: body.Error, Details: body.Details}
}

func (c *Client) ListPosts(ctx context.Context, page, limit int, postType string) (*dto.ListPostsResp, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if postType != "" {
		q.Set("type", postType)
	}
	res, err := c.r(ctx).
		SetQueryParamsFromValues(q).
		SetResult(&dto.ListPostsResp{}).
		Get("/api/posts")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.ListPostsResp), nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetResult(&models.Post{}).
		Get("/api/posts/{id}")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*models.Post), nil
}

func (c *Client) CreatePost(ctx context.Context, body dto.CreatePostReq) (*models.Post, error) {
	res, err := c.r(ctx).
		SetBody(body).
		SetResult(&models.Post{}).
		Post("/api/posts")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*models.Post), nil
}

func (c *Client) Seed(ctx context.Context) (*dto.SeedResp, error) {
	res, err := c.r(ctx).
		SetResult(&dto.SeedResp{}).
		Post("/api/posts/seed")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.SeedResp), nil
}

// FeedOrSeed lists posts and, when the server is unreachable or answers
// with a 5xx, seeds the demo feed and returns the seeded posts of postType
// instead. Client errors such as an unknown type are returned as is.
// seeded reports which path was taken.
func (c *Client) FeedOrSeed(ctx context.Context, limit int, postType string) (posts []models.Post, seeded bool, err error) {
	page, listErr := c.ListPosts(ctx, 1, limit, postType)
	if listErr == nil {
		return page.Items, false, nil
	}
	var apiErr *APIError
	if errors.As(listErr, &apiErr) && apiErr.Status < 500 {
		return nil, false, listErr
	}
	s, err := c.Seed(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list failed (%v) and seeding failed: %w", listErr, err)
	}
	if postType == "" {
		return s.Posts, true, nil
	}
	return lo.Filter(s.Posts, func(p models.Post, _ int) bool {
		return string(p.Type) == postType
	}), true, nil
}

func (c *Client) ReactToPost(ctx context.Context, id, emoji string) (models.Reactions, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetBody(dto.ReactionReq{Emoji: emoji}).
		SetResult(&dto.ReactionResp{}).
		Post("/api/posts/{id}/reactions")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.ReactionResp).Reactions, nil
}

func (c *Client) RSVP(ctx context.Context, id, status string) (models.RSVP, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetBody(dto.RSVPReq{Status: status}).
		SetResult(&dto.RSVPResp{}).
		Post("/api/posts/{id}/rsvp")
	if err := check(res, err); err != nil {
		return models.RSVP{}, err
	}
	return res.Result().(*dto.RSVPResp).RSVP, nil
}

func (c *Client) Comment(ctx context.Context, body dto.CreateCommentReq) (*models.Comment, error) {
	res, err := c.r(ctx).
		SetBody(body).
		SetResult(&models.Comment{}).
		Post("/api/comments")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*models.Comment), nil
}

func (c *Client) ReactToComment(ctx context.Context, id, emoji string) (models.Reactions, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetBody(dto.ReactionReq{Emoji: emoji}).
		SetResult(&dto.ReactionResp{}).
		Post("/api/comments/{id}/reactions")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.ReactionResp).Reactions, nil
}

func (c *Client) Thread(ctx context.Context, postID string) ([]*thread.Node, error) {
	res, err := c.r(ctx).
		SetPathParam("postId", postID).
		SetResult(&dto.ThreadResp{}).
		Get("/api/comments/post/{postId}/thread")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.ThreadResp).Items, nil
}

func (c *Client) Draft(ctx context.Context, prompt string) (*ai.Draft, error) {
	res, err := c.r(ctx).
		SetBody(dto.PromptReq{Prompt: prompt}).
		SetResult(&dto.DraftResp{}).
		Post("/api/ai/parse")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*dto.DraftResp).Draft, nil
}

func (c *Client) Analyze(ctx context.Context, prompt string) (*ai.Analysis, error) {
	res, err := c.r(ctx).
		SetBody(dto.PromptReq{Prompt: prompt}).
		SetResult(&ai.Analysis{}).
		Post("/api/ai/analyze")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*ai.Analysis), nil
}
