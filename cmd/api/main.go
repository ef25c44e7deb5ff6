package main

import (
	"fmt"
	"net/http"
	"time"

	"vidtube/internal/api/handler"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/router"
	"vidtube/internal/asset"
	"vidtube/internal/config"
	"vidtube/internal/infra/database"
	infraES "vidtube/internal/infra/elasticsearch"
	infraKafka "vidtube/internal/infra/kafka"
	infraMinio "vidtube/internal/infra/minio"
	infraRedis "vidtube/internal/infra/redis"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	_ "vidtube/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidTube API
// @version 1.0
// @description 视频分享平台后端 API

// @contact.name API Support
// @contact.email support@vidtube.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database, cfg.App.Mode == "debug"); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Subscription{},
		&model.Tweet{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化 Redis（可选，失败则频道统计不走缓存）
	redisOK := true
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, dashboard stats cache disabled", zap.Error(err))
		redisOK = false
	} else {
		defer infraRedis.Close()
	}

	// 初始化 MinIO（素材存储，必需）
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化 Kafka 生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	assetGateway := asset.NewGateway(infraMinio.Get(), &cfg.MinIO)

	var views service.ViewEventPublisher
	if topic := cfg.Kafka.Topics["video_viewed"]; topic != "" {
		views = &infraKafka.ViewPublisher{Topic: topic}
	}

	var statsCache *service.StatsCache
	var statsInvalidator service.StatsInvalidator
	if redisOK {
		statsCache = service.NewStatsCache(infraRedis.Get())
		statsInvalidator = statsCache
	}

	searchService := service.NewSearchService(videoRepo)

	authService := service.NewAuthService(userRepo)
	videoService := service.NewVideoService(videoRepo, assetGateway, views, searchService, statsInvalidator)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, subRepo, likeRepo, statsCache)

	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService, searchService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r,
		authHandler,
		videoHandler,
		commentHandler,
		likeHandler,
		playlistHandler,
		subscriptionHandler,
		tweetHandler,
		dashboardHandler,
	)

	// 启动HTTP服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
	})
}
