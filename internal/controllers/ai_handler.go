package controllers

import (
	"context"
	"strings"

	"campus-feed/dto"
	"campus-feed/internal/ai"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Gateway is the part of ai.Client the HTTP layer uses.
type Gateway interface {
	Classify(ctx context.Context, prompt string) (*ai.Draft, error)
	CheckToxicity(ctx context.Context, text string) (*ai.ToxicityResult, error)
	SoftenRewrite(ctx context.Context, text string) (string, error)
	AnalyzePrompt(ctx context.Context, prompt string) ai.Analysis
	GenerateImage(ctx context.Context, prompt, size string, enhance bool) (*ai.Image, error)
}

type AIHandler struct {
	gw  Gateway
	log *zap.Logger
}

func NewAIHandler(gw Gateway, log *zap.Logger) *AIHandler {
	return &AIHandler{gw: gw, log: log}
}

// Parse godoc
// @Summary      Draft a post from a prompt
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromptReq  true  "Free text"
// @Success      200  {object}  dto.DraftResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/parse [post]
func (h *AIHandler) Parse(c *fiber.Ctx) error {
	var body dto.PromptReq
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Prompt) == "" {
		return badRequest(c, "prompt is required")
	}

	draft, err := h.gw.Classify(c.UserContext(), body.Prompt)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResp{Draft: draft})
}

// Toxicity godoc
// @Summary      Check text for toxicity
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TextReq  true  "Text"
// @Success      200  {object}  ai.ToxicityResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/toxicity [post]
func (h *AIHandler) Toxicity(c *fiber.Ctx) error {
	var body dto.TextReq
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return badRequest(c, "text is required")
	}

	res, err := h.gw.CheckToxicity(c.UserContext(), body.Text)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// Rewrite godoc
// @Summary      Rewrite text to be non-toxic
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TextReq  true  "Text"
// @Success      200  {object}  dto.RewriteResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/rewrite [post]
func (h *AIHandler) Rewrite(c *fiber.Ctx) error {
	var body dto.TextReq
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return badRequest(c, "text is required")
	}

	out, err := h.gw.SoftenRewrite(c.UserContext(), body.Text)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RewriteResp{Rewritten: out})
}

// Analyze godoc
// @Summary      Guess the post type of a prompt
// @Description  Falls back to a local keyword vote when the provider fails; never errors on upstream failure.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromptReq  true  "Free text"
// @Success      200  {object}  ai.Analysis
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ai/analyze [post]
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var body dto.PromptReq
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Prompt) == "" {
		return badRequest(c, "prompt is required")
	}
	return c.JSON(h.gw.AnalyzePrompt(c.UserContext(), body.Prompt))
}

// Image godoc
// @Summary      Generate an image
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImageReq  true  "Prompt, size and enhance flag"
// @Success      200  {object}  ai.Image
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/image [post]
func (h *AIHandler) Image(c *fiber.Ctx) error {
	var body dto.ImageReq
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Prompt) == "" {
		return badRequest(c, "prompt is required")
	}
	if body.Size == "" {
		body.Size = ai.DefaultImageSize
	}
	if !ai.ValidImageSize(body.Size) {
		return badRequest(c, "size must be one of "+strings.Join(ai.ImageSizes, ", "))
	}
	enhance := body.Enhance == nil || *body.Enhance

	img, err := h.gw.GenerateImage(c.UserContext(), body.Prompt, body.Size, enhance)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(img)
}
