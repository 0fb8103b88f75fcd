package controllers

import (
	"campus-feed/dto"
	mid "campus-feed/internal/middleware"
	"campus-feed/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CommentHandler struct {
	comments *services.CommentService
	log      *zap.Logger
}

func NewCommentHandler(comments *services.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

// ListComments godoc
// @Summary      List a post's comments
// @Description  Flat list in creation order.
// @Tags         comments
// @Produce      json
// @Param        postId  path  string  true  "Post ID"
// @Success      200  {object}  dto.ListCommentsResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/post/{postId} [get]
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	items, err := h.comments.List(c.UserContext(), c.Params("postId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ListCommentsResp{Items: items})
}

// GetThread godoc
// @Summary      Get a post's comment tree
// @Description  Replies nested under their parents. Comments with an unknown parent are roots.
// @Tags         comments
// @Produce      json
// @Param        postId  path  string  true  "Post ID"
// @Success      200  {object}  dto.ThreadResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/post/{postId}/thread [get]
func (h *CommentHandler) GetThread(c *fiber.Ctx) error {
	roots, err := h.comments.Thread(c.UserContext(), c.Params("postId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ThreadResp{Items: roots})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Content starting with "/meme " (after trimming) is replaced by a generated image.
// @Description  Any other comment needs non-blank content and is rejected with 400 otherwise.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCommentReq  true  "Comment"
// @Success      201  {object}  models.Comment
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	cm, err := h.comments.Create(c.UserContext(), mid.SID(c), body)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cm)
}

// ReactToComment godoc
// @Summary      Add a reaction to a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "Comment ID"
// @Param        body  body  dto.ReactionReq  true  "Emoji"
// @Success      200  {object}  dto.ReactionResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/{id}/reactions [post]
func (h *CommentHandler) ReactToComment(c *fiber.Ctx) error {
	var body dto.ReactionReq
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	r, err := h.comments.React(c.UserContext(), c.Params("id"), body.Emoji)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReactionResp{OK: true, Reactions: r})
}
