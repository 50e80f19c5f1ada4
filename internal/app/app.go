package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/controller"
	"eng_assess_backend/internal/repository"
	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/cache"
	"eng_assess_backend/pkg/configwatcher"
	"eng_assess_backend/pkg/database"
	"eng_assess_backend/pkg/logger"
	"eng_assess_backend/pkg/monitoring"
	"eng_assess_backend/pkg/security"
	"eng_assess_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracer          *sdktrace.TracerProvider
	stopWatch       chan struct{}
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	assessment *repository.AssessmentRepository
	submission *repository.SubmissionRepository
	category   *repository.CategoryRepository
	resource   *repository.ResourceRepository
	report     *repository.ReportRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	assessment     *service.AssessmentService
	student        *service.StudentService
	recommendation *service.RecommendationService
	report         *service.ReportService
	category       *service.CategoryService
	resource       *service.ResourceService
	storage        *service.StorageService
	content        *service.ContentService
}

type controllers struct {
	auth       *controller.AuthController
	student    *controller.StudentController
	dashboard  *controller.DashboardController
	assessment *controller.AssessmentController
	user       *controller.UserController
	resource   *controller.ResourceController
	category   *controller.CategoryController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		submission: repository.NewSubmissionRepository(db),
		category:   repository.NewCategoryRepository(db),
		resource:   repository.NewResourceRepository(db),
		report:     repository.NewReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	var reportCache cache.Cache = cache.NopCache{}
	if rdb != nil {
		reportCache = cache.NewRedisCache(rdb, "eng_assess:")
	}

	s := &services{}
	s.report = service.NewReportService(repos.report, reportCache, time.Duration(cfg.Report.CacheSeconds)*time.Second)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.report)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.submission, s.report)
	s.student = service.NewStudentService(repos.submission, repos.report)
	s.recommendation = service.NewRecommendationService(repos.submission, repos.category)
	s.category = service.NewCategoryService(repos.category, s.report, database.DefaultCategories)
	s.resource = service.NewResourceService(repos.resource, repos.assessment)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.content = service.NewContentService(s.storage, os.TempDir())
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		student:    controller.NewStudentController(s.assessment, s.student),
		dashboard:  controller.NewDashboardController(s.recommendation, s.report, s.category),
		assessment: controller.NewAssessmentController(s.assessment),
		user:       controller.NewUserController(s.user),
		resource:   controller.NewResourceController(s.resource, s.content),
		category:   controller.NewCategoryController(s.category),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) migrate(cfg *config.Config) {
	if !cfg.ForceMigrate && cfg.IsRelease() {
		logger.Log.Info("Skipping migration in release mode, use -migrate to force")
		return
	}

	if err := database.Migrate(a.DB); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	seeded, err := database.SeedCategories(context.Background(), a.DB)
	if err != nil {
		logger.Log.Error("Failed to seed categories", zap.Error(err))
		return
	}
	if seeded > 0 {
		logger.Log.Info("Default categories seeded", zap.Int("count", seeded))
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, !cfg.IsRelease())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		stopWatch: make(chan struct{}),
	}

	app.migrate(cfg)
	if cfg.MigrateOnly {
		return app
	}

	// redis 只用于统计缓存，连接失败时降级为不缓存
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, report cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Fatal("Failed to register validators", zap.Error(err))
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Redis)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(logger.SetLevel)
	go configwatcher.WatchConfig(cfg.FilePath, app.stopWatch, func(newCfg *config.Config) {
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	close(a.stopWatch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
