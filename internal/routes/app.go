package routes

import (
	"errors"
	"strings"

	"campus-feed/config"
	"campus-feed/dto"
	"campus-feed/internal/controllers"
	"campus-feed/internal/metrics"
	"campus-feed/internal/middleware"
	"campus-feed/internal/services"
	"campus-feed/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	Config   config.Config
	Log      *zap.Logger
	Posts    *services.PostService
	Comments *services.CommentService
	AI       controllers.Gateway
	Uploads  storage.Storage
	Session  middleware.SessionConfig
}

func NewApp(d Deps) *fiber.App {
	bodyLimit := d.Config.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 20
	}

	app := fiber.New(fiber.Config{
		AppName:      "campus-feed",
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.Origin,
		AllowCredentials: !strings.Contains(d.Config.Origin, "*"),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.Session(d.Session))
	app.Use(middleware.RequestLog(d.Log))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	if d.Config.UploadDriver != "minio" {
		app.Static("/uploads", d.Config.UploadDir)
	}

	api := app.Group("/api")
	api.Get("/health", controllers.Health)

	SetupRoutesPost(api, controllers.NewPostHandler(d.Posts, d.Log))
	SetupRoutesComment(api, controllers.NewCommentHandler(d.Comments, d.Log))
	SetupRoutesAI(api, controllers.NewAIHandler(d.AI, d.Log))
	SetupRoutesUpload(api, controllers.NewUploadHandler(d.Uploads, d.Log))

	return app
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(dto.ErrorResponse{Error: msg})
	}
}
