// Package server initializes and runs the backend: configuration, logging,
// database with migrations, and the two transport adapters (HTTP and gRPC)
// serving the same domain services.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dkurbatov/goblog/internal/logging"
	"github.com/dkurbatov/goblog/internal/server/auth"
	"github.com/dkurbatov/goblog/internal/server/config"
	gs "github.com/dkurbatov/goblog/internal/server/grpc"
	"github.com/dkurbatov/goblog/internal/server/httpapi"
	"github.com/dkurbatov/goblog/internal/server/migrations"
	"github.com/dkurbatov/goblog/internal/server/repositories/posts"
	"github.com/dkurbatov/goblog/internal/server/repositories/users"
	"github.com/dkurbatov/goblog/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	grpcServer *gs.GRPCServer
	httpServer *httpapi.HTTPServer
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenEngine([]byte(cfg.SecretKey), cfg.TokenTTL)

	userService := services.NewUserService(users.NewPostgresRepository(db), tokens)
	postService := services.NewPostService(posts.NewPostgresRepository(db), cfg.DefaultPageSize, cfg.MaxPageSize)

	grpcServer := gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, userService, postService,
		tokens, cfg.RequestTimeout)
	httpServer := httpapi.NewHTTPServer(cfg.EndpointAddrHTTP, logger, userService, postService,
		tokens, cfg.RequestTimeout, cfg.MaxBodyBytes)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.grpcServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
