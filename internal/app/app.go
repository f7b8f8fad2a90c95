package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GlebRadaev/photoexpress/internal/config"
	"github.com/GlebRadaev/photoexpress/internal/handlers"
	"github.com/GlebRadaev/photoexpress/internal/notify"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/internal/reconciler"
	"github.com/GlebRadaev/photoexpress/internal/repo"
	"github.com/GlebRadaev/photoexpress/internal/service"
	"github.com/GlebRadaev/photoexpress/internal/storage"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/clients"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"github.com/GlebRadaev/photoexpress/pkg/logger"
	"github.com/GlebRadaev/photoexpress/pkg/utils"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	rec  *reconciler.Service

	errCh chan error
	wg    sync.WaitGroup
	ready atomic.Bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}
	a.pool = pool
	a.cfg = cfg

	if err := a.build(pg.NewTXManager(pool)); err != nil {
		pool.Close()
		return err
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startReconciler(ctx)

	a.ready.Store(true)
	zap.L().Info("all systems started successfully")
	return nil
}

// build wires repositories, services, handlers and the reconciler over the
// pool opened by Start.
func (a *Application) build(txManager pg.TXManager) error {
	pricingCfg, err := a.cfg.PricingConfig()
	if err != nil {
		return fmt.Errorf("can't build price table: %w", err)
	}
	notifier, err := newNotifier(a.cfg)
	if err != nil {
		return fmt.Errorf("can't create notifier: %w", err)
	}
	jwtService := auth.NewJWTService(a.cfg.JWTSecret)
	clk := clock.Real{}

	a.repo = repo.New(a.pool, txManager)
	a.srv = service.New(a.repo, service.Deps{
		TxManager:         txManager,
		JWT:               jwtService,
		Pricing:           pricing.New(pricingCfg),
		Notifier:          notifier,
		Storage:           storage.NewLocal(a.cfg.UploadsDir),
		Clock:             clk,
		FirstOrderPercent: a.cfg.FirstOrderDiscount,
	})
	if a.cfg.BotSecret == "" || a.cfg.ServiceToken == "" {
		zap.L().Warn("BOT_SECRET or SERVICE_TOKEN is empty, the routes they guard reject every call")
	}
	a.api = handlers.New(a.srv, jwtService, handlers.Secrets{
		Bot:     a.cfg.BotSecret,
		Service: a.cfg.ServiceToken,
	})
	a.rec = reconciler.New(
		a.cfg.ReconcilerConfig(),
		a.repo.OrderRepo,
		a.srv.Lifecycle,
		clk,
		reconciler.NewMetrics(prometheus.DefaultRegisterer),
	)
	return nil
}

// newNotifier sends through the Telegram Bot API when a token is configured
// and only logs messages otherwise.
func newNotifier(cfg *config.Config) (notify.Sender, error) {
	if cfg.BotToken == "" {
		zap.L().Warn("BOT_TOKEN is empty, notifications are only logged")
		return notify.LogSender{}, nil
	}
	sender, err := notify.NewTelegramSender(cfg.BotToken, cfg.BotAPIEndpoint, clients.NewHTTPClient(clients.DefaultTimeout))
	if err != nil {
		return nil, err
	}
	return sender, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/ready", a.readiness)
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("can't shutdown http server", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// readiness answers 503 until every part of the application has started.
func (a *Application) readiness(w http.ResponseWriter, _ *http.Request) {
	if !a.ready.Load() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Starting")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Ready"})
}

func (a *Application) startReconciler(ctx context.Context) {
	a.rec.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.rec.Wait(); err != nil {
			a.errCh <- fmt.Errorf("reconciler exited with error: %w", err)
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if a.pool != nil {
		a.pool.Close()
	}
	return appErr
}
