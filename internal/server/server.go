package server

import (
	"log"

	"lingua-service/configs"
	"lingua-service/configs/database"
	"lingua-service/internal/auth"
	"lingua-service/internal/chat"
	"lingua-service/internal/events"
	"lingua-service/internal/friends"
	"lingua-service/internal/server/middleware"
	"lingua-service/internal/storage"
	"lingua-service/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	router *gin.Engine
	db     *gorm.DB
	config *configs.Config
}

func NewApp() (*App, error) {
	config := configs.Load()

	db, err := database.NewPostgresConnection(
		config.DatabaseURL,
		config.PostgresUser,
		config.PostgresPassword,
		config.PostgresHost,
		config.PostgresPort,
		config.PostgresDB,
	)
	if err != nil {
		return nil, err
	}

	redisClient, err := database.InitRedis(config.RedisURL)
	if err != nil {
		return nil, err
	}

	// External collaborators. The chat provider and the notification topic
	// are side channels; the app still boots without them.
	var streamClient chat.StreamClient
	if config.StreamAPIKey != "" && config.StreamAPISecret != "" {
		streamClient, err = chat.NewStreamClient(config.StreamAPIKey, config.StreamAPISecret)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("STREAM_API_KEY and STREAM_API_SECRET are not set, chat provider disabled")
	}

	var publisher events.Publisher
	if len(config.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(config.KafkaBrokers, config.KafkaTopic)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("KAFKA_BROKERS is not set, notification events disabled")
	}

	var uploader storage.Uploader
	if config.MinIOEndpoint != "" {
		uploader, err = storage.NewMinIOUploader(
			config.MinIOEndpoint,
			config.MinIOAccessKey,
			config.MinIOSecretKey,
			config.MinIOBucket,
			config.MinIOUseSSL,
		)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("MINIO_ENDPOINT is not set, avatar uploads disabled")
	}

	// Setup services and handlers
	issuer := token.NewIssuer(config.JWTSecret, config.JWTExpire)

	authRepo := auth.NewAuthRepository(db)
	authService := auth.NewAuthService(authRepo, streamClient, publisher, uploader)
	authHandler := auth.NewAuthHandler(authService, issuer, config.JWTExpire, config.IsProduction())

	friendRepo := friends.NewFriendRepository(db)
	friendService := friends.NewFriendService(friendRepo, publisher)
	friendHandler := friends.NewFriendHandler(friendService)

	chatHandler := chat.NewChatHandler(streamClient)

	guard := middleware.Protect(issuer, authRepo)
	rateLimiter := middleware.NewRateLimitMiddleware(redisClient)

	router := gin.New()
	router.Use(middleware.LogAPI(), gin.Recovery())

	SetupRoutes(router, authHandler, friendHandler, chatHandler, guard, rateLimiter)

	return &App{
		router: router,
		db:     db,
		config: config,
	}, nil
}

func (a *App) Run() error {
	return a.router.Run(":" + a.config.Port)
}
