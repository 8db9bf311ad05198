package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-directory-api/config"
	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/application/services"
	"user-directory-api/internal/infrastructure/db/postgres"
	userDB "user-directory-api/internal/infrastructure/db/postgres/user"
	"user-directory-api/internal/infrastructure/metrics"
	"user-directory-api/internal/infrastructure/mirror"
	"user-directory-api/internal/infrastructure/mq"
	"user-directory-api/internal/infrastructure/storage"
	"user-directory-api/internal/infrastructure/store"
	"user-directory-api/internal/interface/api/rest"
	"user-directory-api/internal/interface/api/rest/middleware"
	"user-directory-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	storage    ports.Storage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config; a missing .env just means the process env is the config
	if err = godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// storage engine
	var (
		dbPool *pgxpool.Pool
		eng    ports.Storage
	)
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		eng = storage.NewLocal(store.New(), mirror.None{})
	case config.BackendFile:
		eng = storage.NewLocal(store.New(), mirror.NewLogFile(cfg.Storage.File, logger))
	case config.BackendPostgres:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		dbPool, err = postgres.New(ctx, logger, dbDsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		eng = storage.NewTable(
			userDB.NewRepository(dbPool),
			mirror.NewLogFile(cfg.Storage.File, logger),
		)
	default:
		logger.Fatal("unknown storage backend", zap.String("backend", cfg.Storage.Backend))
	}
	if err = eng.Load(ctx); err != nil {
		logger.Fatal("failed to load storage", zap.Error(err))
	}

	// rabbitMQ, optional
	var (
		rbMQ        ports.RabbitMQ
		rmqConsumer ports.RMQConsumer
	)
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		m := mq.New(cfg.MQ, logger)
		if err = m.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = m.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		rbMQ = m

		consumer := rmqconsumer.New(cfg.MQ, logger)
		if err = consumer.Connect(rabbitDsn); err != nil {
			logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
		}
		if err = consumer.Init(); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}
		rmqConsumer = consumer
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		storage:    eng,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - the central place to launch and manage the application's
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	var events mq.InputCh
	if a.mq != nil {
		events = a.mq.GetInputChan()
	}

	// services
	directory := services.NewDirectoryService(a.storage, events, a.mCounter)

	// controllers
	rest.NewUserController(a.router, directory, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
