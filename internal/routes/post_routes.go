package routes

import (
	"campus-feed/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutesPost(api fiber.Router, h *controllers.PostHandler) {
	posts := api.Group("/posts")
	posts.Get("/", h.ListPosts)
	posts.Post("/", h.CreatePost)
	// registered before /:id so "seed" is never taken for an id
	posts.Post("/seed", h.SeedPosts)
	posts.Get("/:id", h.GetPost)
	posts.Post("/:id/reactions", h.ReactToPost)
	posts.Post("/:id/rsvp", h.RSVP)
}
