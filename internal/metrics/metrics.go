package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_reactions_total",
		Help: "Reaction increments by target kind.",
	}, []string{"target"})

	RSVPs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_rsvps_total",
		Help: "RSVP increments by status.",
	}, []string{"status"})

	Posts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_posts_created_total",
		Help: "Posts created by type.",
	}, []string{"type"})

	Comments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_comments_created_total",
		Help: "Comments created, split by plain text and meme.",
	}, []string{"kind"})

	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_ai_upstream_calls_total",
		Help: "AI provider calls by operation and outcome.",
	}, []string{"op", "outcome"})

	Fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusfeed_ai_fallbacks_total",
		Help: "Local keyword fallbacks taken instead of an upstream answer.",
	}, []string{"path"})
)

// Handler exposes the default registry on a Fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
