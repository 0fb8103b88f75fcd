package controllers

import (
	"fmt"

	"campus-feed/config"
	"campus-feed/dto"
	mid "campus-feed/internal/middleware"
	"campus-feed/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PostHandler struct {
	posts *services.PostService
	log   *zap.Logger
}

func NewPostHandler(posts *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Newest first, paged with page/limit. Optional type filter.
// @Tags         posts
// @Produce      json
// @Param        page   query  int     false  "Page number, from 1"
// @Param        limit  query  int     false  "Page size (max 100)"
// @Param        type   query  string  false  "event | lostfound | announcement"
// @Success      200  {object}  dto.ListPostsResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/posts [get]
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", config.DefaultLimitPosts)

	resp, err := h.posts.List(c.UserContext(), page, limit, c.Query("type"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	p, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(p)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  authorSid comes from the session cookie; rsvp and reactions start empty.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePostReq  true  "Post fields"
// @Success      201  {object}  models.Post
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var body dto.CreatePostReq
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.posts.Create(c.UserContext(), mid.SID(c), body)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// SeedPosts godoc
// @Summary      Reset the feed to demo data
// @Description  Deletes every post and inserts the fixed demo set.
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.SeedResp
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/posts/seed [post]
func (h *PostHandler) SeedPosts(c *fiber.Ctx) error {
	posts, err := h.posts.Seed(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SeedResp{
		Message: fmt.Sprintf("Seeded %d example posts", len(posts)),
		Posts:   posts,
	})
}

// ReactToPost godoc
// @Summary      Add a reaction to a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "Post ID"
// @Param        body  body  dto.ReactionReq  true  "Emoji"
// @Success      200  {object}  dto.ReactionResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/reactions [post]
func (h *PostHandler) ReactToPost(c *fiber.Ctx) error {
	var body dto.ReactionReq
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	r, err := h.posts.React(c.UserContext(), c.Params("id"), body.Emoji)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReactionResp{OK: true, Reactions: r})
}

// RSVP godoc
// @Summary      RSVP to an event
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Post ID"
// @Param        body  body  dto.RSVPReq  true  "going | interested | notGoing"
// @Success      200  {object}  dto.RSVPResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/rsvp [post]
func (h *PostHandler) RSVP(c *fiber.Ctx) error {
	var body dto.RSVPReq
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	r, err := h.posts.RSVP(c.UserContext(), c.Params("id"), body.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RSVPResp{OK: true, RSVP: r})
}
