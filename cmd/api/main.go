package main

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"studyshare/internal/config"
	"studyshare/internal/database"
	"studyshare/internal/domain/auth"
	"studyshare/internal/domain/chat"
	"studyshare/internal/domain/files"
	"studyshare/internal/domain/profile"
	"studyshare/internal/middleware"
	jwtsvc "studyshare/internal/pkg/jwt"
	"studyshare/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("db connection failed", zap.Error(err))
	}
	logger.Info("database connected", zap.String("dialect", cfg.DatabaseDialect()))
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	userRepo := auth.NewRepository(db)
	messageRepo := chat.NewRepository(db)
	fileRepo := files.NewRepository(db)

	fileStore := storage.NewLocal(filepath.Join(cfg.UploadDir, "files"))
	imageStore := storage.NewLocal(filepath.Join(cfg.UploadDir, "profiles"))

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService)

	hub := chat.NewHub()
	chatService := chat.NewService(messageRepo)
	chatHandler := chat.NewHandler(chatService, hub)
	wsHandler := chat.NewWSHandler(hub, tokens, authService, logger)

	fileService := files.NewService(fileRepo, fileStore, cfg.MaxFileSize, logger)
	fileHandler := files.NewHandler(fileService)

	profileService := profile.NewService(userRepo, fileRepo, messageRepo, imageStore, logger)
	profileHandler := profile.NewHandler(profileService)

	r := gin.New()
	r.Use(middleware.ErrorLogger(logger))
	r.Use(middleware.CORS())

	r.Static("/static/profiles", filepath.Join(cfg.UploadDir, "profiles"))

	api := r.Group("/api")
	{
		// public
		auth.RegisterRoutes(api, authHandler)
		chat.RegisterWSRoutes(api, wsHandler)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(tokens, authService, logger))
		{
			chat.RegisterRoutes(protected, chatHandler)
			files.RegisterRoutes(protected, fileHandler)
			profile.RegisterRoutes(protected, profileHandler)
		}
	}

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "prod" || appEnv == "production" || appEnv == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
