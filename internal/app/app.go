package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/okothnm/woodline-backend/internal/adapter/postgres"
	notificationrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/notification"
	salerepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/sale"
	stockrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/stock"
	submissionrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/submission"
	taskrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/task"
	userrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/user"
	"github.com/okothnm/woodline-backend/internal/auth"
	"github.com/okothnm/woodline-backend/internal/config"
	"github.com/okothnm/woodline-backend/internal/push"
	notificationsvc "github.com/okothnm/woodline-backend/internal/service/notification"
	salessvc "github.com/okothnm/woodline-backend/internal/service/sales"
	stocksvc "github.com/okothnm/woodline-backend/internal/service/stock"
	tasksvc "github.com/okothnm/woodline-backend/internal/service/task"
	usersvc "github.com/okothnm/woodline-backend/internal/service/user"
	"github.com/okothnm/woodline-backend/internal/transport/middleware"
	"github.com/okothnm/woodline-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to the
// database, wires repositories, services and transport, and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// Infrastructure.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	hub := push.NewHub(logger, cfg.Push.SubscriberBuffer)
	defer hub.Close()

	// Repositories.
	notifications := notificationrepo.New(pool)
	users := userrepo.New(pool)
	submissions := submissionrepo.New(pool)
	stockItems := stockrepo.New(pool)
	sales := salerepo.New(pool)
	tasks := taskrepo.New(pool)

	// Services.
	notificationService := notificationsvc.NewService(
		logger, notifications, users, submissions, stockItems, hub,
		cfg.Inventory.LowStockThreshold,
	)
	stockService := stocksvc.NewService(logger, submissions, stockItems, users, notificationService, txm)
	salesService := salessvc.NewService(
		logger, sales, stockItems, users, notificationService, txm,
		cfg.Inventory.LargeSaleThreshold,
	)
	taskService := tasksvc.NewService(logger, tasks, users, notificationService)
	userService := usersvc.NewService(logger, users, jwtMgr, cfg.Auth.PasswordHashCost)

	// Handlers.
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	authHandler := rest.NewAuthHandler(userService, logger)
	notificationHandler := rest.NewNotificationHandler(notificationService, logger)
	streamHandler := rest.NewStreamHandler(hub, logger)
	stockHandler := rest.NewStockHandler(stockService, logger)
	salesHandler := rest.NewSalesHandler(salesService, logger)
	taskHandler := rest.NewTaskHandler(taskService, logger)

	// Middleware chain.
	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtMgr),
	)
	loginChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rl.Limit(20),
	)

	mux := http.NewServeMux()

	// Preflight requests are answered by the CORS middleware itself.
	corsOnly := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
	)
	mux.Handle("OPTIONS /", corsOnly(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("POST /auth/register", loginChain(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /auth/login", loginChain(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /auth/me", chain(http.HandlerFunc(authHandler.Me)))

	mux.Handle("GET /notifications", chain(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("GET /notifications/unread-count", chain(http.HandlerFunc(notificationHandler.UnreadCount)))
	mux.Handle("GET /notifications/stream", chain(http.HandlerFunc(streamHandler.Stream)))
	mux.Handle("POST /notifications/{id}/read", chain(http.HandlerFunc(notificationHandler.MarkRead)))
	mux.Handle("POST /notifications/read-all", chain(http.HandlerFunc(notificationHandler.MarkAllRead)))
	mux.Handle("DELETE /notifications/{id}", chain(http.HandlerFunc(notificationHandler.Delete)))
	mux.Handle("DELETE /notifications", chain(http.HandlerFunc(notificationHandler.Clear)))

	mux.Handle("POST /stock/submissions", chain(http.HandlerFunc(stockHandler.Submit)))
	mux.Handle("GET /stock/submissions/pending", chain(http.HandlerFunc(stockHandler.ListPending)))
	mux.Handle("POST /stock/submissions/{id}/approve", chain(http.HandlerFunc(stockHandler.Approve)))
	mux.Handle("POST /stock/submissions/{id}/reject", chain(http.HandlerFunc(stockHandler.Reject)))
	mux.Handle("POST /stock/offload", chain(http.HandlerFunc(stockHandler.Offload)))
	mux.Handle("GET /stock/items/{id}", chain(http.HandlerFunc(stockHandler.GetItem)))
	mux.Handle("GET /stock/low", chain(http.HandlerFunc(stockHandler.ListLow)))

	mux.Handle("POST /sales", chain(http.HandlerFunc(salesHandler.Record)))
	mux.Handle("GET /sales", chain(http.HandlerFunc(salesHandler.List)))
	mux.Handle("GET /sales/{id}", chain(http.HandlerFunc(salesHandler.Get)))

	mux.Handle("POST /tasks", chain(http.HandlerFunc(taskHandler.Assign)))
	mux.Handle("GET /tasks/{id}", chain(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("POST /tasks/{id}/complete", chain(http.HandlerFunc(taskHandler.Complete)))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
