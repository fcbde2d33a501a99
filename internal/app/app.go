package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"study_scholar_backend/internal/config"
	"study_scholar_backend/internal/controller"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/service"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/configwatcher"
	"study_scholar_backend/pkg/kvstore"
	"study_scholar_backend/pkg/logger"
	"study_scholar_backend/pkg/monitoring"
	"study_scholar_backend/pkg/security"
	"study_scholar_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           kvstore.Store
	storeCloser     io.Closer
	tracer          *sdktrace.TracerProvider
	services        *services
	configCallbacks []func(*config.Config)

	// 限流清理协程和配置监听的生命周期
	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	mockTest *repository.MockTestRepository
	note     *repository.NoteRepository
	progress *repository.ProgressRepository
}

// reconfigurableCompleter 支持热加载的模型客户端
type reconfigurableCompleter interface {
	service.Completer
	UpdateConfig(cfg config.AIConfig)
}

type services struct {
	storage   *service.StorageService
	completer reconfigurableCompleter
	generator *service.MockTestGenerator
	client    service.GenerationClient
	mockTest  *service.MockTestService
	note      *service.NoteService
	progress  *service.ProgressService
}

type controllers struct {
	mockTest   *controller.MockTestController
	note       *controller.NoteController
	progress   *controller.ProgressController
	generation *controller.GenerationController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories() *repositories {
	return &repositories{
		mockTest: repository.NewMockTestRepository(),
		note:     repository.NewNoteRepository(),
		progress: repository.NewProgressRepository(),
	}
}

func newCompleter(cfg config.AIConfig) reconfigurableCompleter {
	if cfg.Provider == config.ProviderGemini {
		return service.NewGeminiService(cfg)
	}
	return service.NewAIService(cfg)
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	// 只有开启镜像时才把笔记原文件写入对象存储
	if cfg.Storage.MirrorNotes {
		s.storage = service.NewStorageService(cfg)
	}

	s.completer = newCompleter(cfg.AI)
	s.generator = service.NewMockTestGenerator(s.completer)

	if cfg.Generator.Endpoint != "" {
		s.client = service.NewHTTPGenerationClient(cfg.Generator)
		logger.Log.Info("Using remote generation service", zap.String("endpoint", cfg.Generator.Endpoint))
	} else {
		s.client = service.NewLocalGenerationClient(s.generator)
		logger.Log.Info("Using in-process generation service", zap.String("provider", cfg.AI.Provider))
	}

	s.mockTest = service.NewMockTestService(repos.mockTest, s.client)
	s.note = service.NewNoteService(repos.note, s.storage, cfg.Upload.MaxBytes())
	s.progress = service.NewProgressService(repos.progress)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		mockTest:   controller.NewMockTestController(s.mockTest),
		note:       controller.NewNoteController(s.note),
		progress:   controller.NewProgressController(s.progress),
		generation: controller.NewGenerationController(s.generator),
		health:     controller.NewHealthController(a.Store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 组装存储、服务和路由，调用方负责提前初始化日志
func NewApp(cfg *config.Config) (*App, error) {
	store, closer, err := kvstore.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Store initialized", zap.String("type", cfg.Store.Type))

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:      cfg,
		Store:       store,
		storeCloser: closer,
		ctx:         ctx,
		cancel:      cancel,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("study-scholar", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			// 追踪不可用时不影响主流程
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	repos := app.initRepositories()
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.services.completer.UpdateConfig(newCfg.AI)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.MirrorNotes && cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) startBackgroundTasks() {
	if a.Config.File == "" {
		return
	}
	if _, err := os.Stat(a.Config.File); err != nil {
		logger.Log.Info("Config file not found, hot reload disabled", zap.String("file", a.Config.File))
		return
	}
	go func() {
		if err := configwatcher.WatchConfig(a.ctx, a.Config.File, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

// Close 释放后台协程、追踪和存储连接
func (a *App) Close() {
	a.cancel()

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.storeCloser != nil {
		if err := a.storeCloser.Close(); err != nil {
			logger.Log.Error("Failed to close store", zap.Error(err))
		}
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	a.startBackgroundTasks()

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		a.Close()
		return err
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
