/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docchat-be/config"
	"github.com/tieubaoca/docchat-be/database"
	"github.com/tieubaoca/docchat-be/handler"
	"github.com/tieubaoca/docchat-be/middleware"
	"github.com/tieubaoca/docchat-be/repository"
	"github.com/tieubaoca/docchat-be/service"
	"github.com/tieubaoca/docchat-be/types"
	"go.uber.org/zap"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PDF chat server",
	Long:  `Starts the HTTP server that handles auth, chats and PDF uploads`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			logger.Fatal("Failed to load config", zap.Error(err))
		}

		// Initialize repositories
		var (
			userRepo repository.UserRepo
			chatRepo repository.ChatRepo
			pdfRepo  repository.PDFRepo
		)
		if cfg.UseInMemory {
			logger.Info("Using in-memory storage")
			store := repository.NewMemoryStore()
			userRepo, chatRepo, pdfRepo = store, store, store
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			mongoClient, err := database.Connect(ctx, cfg.MongoURI)
			if err != nil {
				logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
			}
			db := mongoClient.Database(cfg.Database)
			userRepo = repository.NewUserRepo(db.Collection("users"))
			chatRepo = repository.NewChatRepo(db.Collection("chats"))
			pdfRepo = repository.NewPDFRepo(db.Collection("pdfs"))
		}

		// Initialize services
		pdfService := service.NewPDFService(
			types.DocumentServiceConfig{
				MaxChunkSize: cfg.Document.ChunkSize,
				OverlapSize:  cfg.Document.ChunkOverlap,
			}, logger)

		var aiService service.AIService
		switch strings.ToLower(cfg.AI.Provider) {
		case "openai":
			aiService = service.NewOpenAIService(cfg.AI.Endpoint, cfg.AI.OpenAIAPIKey, cfg.AI.Model, logger)
		default:
			aiService, err = service.NewGeminiService(cfg.AI.GoogleAPIKeys(), cfg.AI.Model, logger)
			if err != nil {
				logger.Fatal("Failed to initialize Gemini service", zap.Error(err))
			}
		}

		answerService := service.NewAnswerService(aiService, cfg.AI.Timeout(), logger)
		chatService := service.NewChatService(
			chatRepo,
			pdfRepo,
			pdfService,
			service.NewPassthroughAssembler(),
			answerService,
			logger,
		)
		userService := service.NewUserService(userRepo)

		// Initialize handlers
		authHandler := handler.NewAuthHandler(userService)
		chatHandler := handler.NewChatHandler(chatService)
		pdfHandler := handler.NewPDFHandler(chatService, cfg.MaxUploadSize)

		// Setup Gin router
		router := gin.New()
		router.Use(middleware.RequestID())
		router.Use(middleware.RequestLogger(logger))
		router.Use(gin.Recovery())
		router.MaxMultipartMemory = cfg.MaxUploadSize

		corsConfig := cors.DefaultConfig()
		if len(cfg.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.AllowedOrigins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
		router.Use(cors.New(corsConfig))

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, types.HealthResponse{
				Status:  "OK",
				Message: "Backend is running",
			})
		})

		api := router.Group("/api")
		api.POST("/auth/signup", authHandler.HandleSignup)
		api.POST("/auth/login", authHandler.HandleLogin)

		// Protected routes
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.POST("/chat/new", chatHandler.HandleNewChat)
			authorized.GET("/chat/history", chatHandler.HandleHistory)
			authorized.GET("/chat/:chatId/messages", chatHandler.HandleMessages)
			authorized.POST("/chat/message", chatHandler.HandleSendMessage)
			authorized.DELETE("/chat/:chatId/messages", chatHandler.HandleClearMessages)
			authorized.DELETE("/chat/:chatId", chatHandler.HandleDeleteChat)
			authorized.POST("/pdf/upload", pdfHandler.HandleUpload)
			authorized.GET("/pdf/list", pdfHandler.HandleList)
		}

		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
