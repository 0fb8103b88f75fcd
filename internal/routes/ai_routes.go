package routes

import (
	"campus-feed/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutesAI(api fiber.Router, h *controllers.AIHandler) {
	g := api.Group("/ai")
	g.Post("/parse", h.Parse)
	g.Post("/toxicity", h.Toxicity)
	g.Post("/rewrite", h.Rewrite)
	g.Post("/analyze", h.Analyze)
	g.Post("/image", h.Image)
}

func SetupRoutesUpload(api fiber.Router, h *controllers.UploadHandler) {
	api.Post("/upload", h.Upload)
}
