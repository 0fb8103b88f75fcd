// @title Campus Feed API
// @version 1.0
// @description Anonymous campus feed: posts, threaded comments, reactions, RSVPs and AI helpers.
// @host localhost:4000
// @BasePath /

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "campus-feed/docs"

	"campus-feed/bootstrap"
	"campus-feed/config"
	"campus-feed/database"
	"campus-feed/internal/ai"
	"campus-feed/internal/middleware"
	"campus-feed/internal/moderation"
	"campus-feed/internal/repository"
	"campus-feed/internal/routes"
	"campus-feed/internal/services"
	"campus-feed/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	posts, comments, closeStore := openStores(ctx, cfg, log)
	defer closeStore()

	uploads, err := openUploads(ctx, cfg, log)
	if err != nil {
		log.Fatal("upload storage", zap.Error(err))
	}

	aiCfg := ai.Config{
		APIKey:          cfg.OpenAIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		ChatModel:       cfg.OpenAIChatModel,
		ImageModel:      cfg.OpenAIImageModel,
		ModerationModel: cfg.OpenAIModerationModel,
		Timeout:         cfg.OpenAITimeout,
	}
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY is empty, AI endpoints will fail and fall back where they can")
	}
	gateway := ai.New(aiCfg, log)
	defer gateway.Close()

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		log.Warn("SESSION_SECRET is empty, using a random secret; sessions reset on restart")
		secret = middleware.RandomSecret()
	}

	masker := moderation.NewFilter(moderation.DefaultBannedWords, cfg.ProfanityWords)

	app := routes.NewApp(routes.Deps{
		Config:   cfg,
		Log:      log,
		Posts:    services.NewPostService(posts, log.Named("posts")),
		Comments: services.NewCommentService(posts, comments, gateway, masker, log.Named("comments")),
		AI:       gateway,
		Uploads:  uploads,
		Session:  middleware.SessionConfig{Secret: secret, Secure: cfg.CookieSecure},
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (services.PostStore, services.CommentStore, func()) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemoryPostRepository(), repository.NewMemoryCommentRepository(), func() {}
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo", zap.Error(err))
	}
	db := client.Database(cfg.MongoDB)

	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bootstrap.EnsureFeedIndexes(idxCtx, db); err != nil {
		log.Fatal("ensure indexes failed", zap.Error(err))
	}

	closeFn := func() {
		if err := database.DisconnectMongo(client); err != nil {
			log.Warn("mongo disconnect", zap.Error(err))
		}
	}
	return repository.NewPostRepository(db, bootstrap.PostsCollection),
		repository.NewCommentRepository(db, bootstrap.CommentsCollection),
		closeFn
}

func openUploads(ctx context.Context, cfg config.Config, log *zap.Logger) (storage.Storage, error) {
	if cfg.UploadDriver == "minio" {
		return storage.NewMinio(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		}, log.Named("minio"))
	}
	return storage.NewDisk(cfg.UploadDir, "/uploads", log.Named("disk"))
}
