// Package server initializes and runs the homeledger backend: storage,
// migrations, services, the realtime hub and the gRPC endpoint, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/server/config"
	"github.com/dmitrijs2005/homeledger/internal/server/db"
	"github.com/dmitrijs2005/homeledger/internal/server/realtime"
	"github.com/dmitrijs2005/homeledger/internal/server/services"

	gs "github.com/dmitrijs2005/homeledger/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repos          db.RepositoryManager
	userService    *services.UserService
	ledgerService  *services.LedgerService
	receiptService *services.ReceiptService
	hub            *realtime.Hub
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hub := realtime.NewHub()

	us := services.NewUserService(rm.Users(), rm.RefreshTokens(), c)
	ls := services.NewLedgerService(rm.Expenses(), rm.Reminders(), hub)
	rs := services.NewReceiptService(c)

	return &App{
		config:         c,
		logger:         logger,
		repos:          rm,
		userService:    us,
		ledgerService:  ls,
		receiptService: rs,
		hub:            hub,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.userService, app.ledgerService, app.receiptService, app.hub, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return app.repos.Close()
}
