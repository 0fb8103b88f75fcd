package routes

import (
	"campus-feed/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutesComment(api fiber.Router, h *controllers.CommentHandler) {
	comments := api.Group("/comments")
	comments.Get("/post/:postId", h.ListComments)
	comments.Get("/post/:postId/thread", h.GetThread)
	comments.Post("/", h.CreateComment)
	comments.Post("/:id/reactions", h.ReactToComment)
}
