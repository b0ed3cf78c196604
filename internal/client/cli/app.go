// Package cli implements the interactive terminal client: a REPL over the
// ledger services, plus the background goroutines that watch connectivity,
// replay the offline queue, and consume the realtime feed.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/config"
	"github.com/dmitrijs2005/homeledger/internal/client/connectivity"
	"github.com/dmitrijs2005/homeledger/internal/client/notify"
	"github.com/dmitrijs2005/homeledger/internal/client/reconcile"
	"github.com/dmitrijs2005/homeledger/internal/client/session"
	"github.com/dmitrijs2005/homeledger/internal/client/services"
	syncer "github.com/dmitrijs2005/homeledger/internal/client/sync"
	"github.com/dmitrijs2005/homeledger/internal/filex"
	"github.com/dmitrijs2005/homeledger/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Session
	api      client.Client
	repos    *client.Repositories
	monitor  *connectivity.Monitor
	engine   *reconcile.Engine
	replayer *syncer.Replayer
	auth     *services.AuthService
	ledger   *services.LedgerService
	receipts *services.ReceiptService
	reader   *bufio.Reader

	// mu guards loggedIn and feedCancel, which the REPL goroutine writes
	// (login) and the event goroutine reads and rewrites (connectivity
	// edges, feed restarts).
	mu         sync.Mutex
	loggedIn   bool
	feedCancel context.CancelFunc
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr,
		&slog.HandlerOptions{Level: slog.LevelWarn})))

	dbPath := "homeledger.db"
	if c.DataDir != "" {
		dir, err := filex.EnsureSubDir(c.DataDir)
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "homeledger.db")
	}

	repos, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	api, err := client.NewLedgerClient(c.ServerEndpointAddr)
	if err != nil {
		repos.Close()
		return nil, err
	}

	sess := session.NewSession()
	notifier := notify.Func(func(msg string) { fmt.Println("*", msg) })
	monitor := connectivity.NewMonitor(api, c.OnlineCheckInterval)
	engine := reconcile.NewEngine(sess, api, repos.Expenses, repos.Reminders, logger)
	replayer := syncer.NewReplayer(repos.Queue, api, engine, notifier, logger)
	ledger := services.NewLedgerService(api, sess, repos.Queue, repos.Expenses, repos.Reminders,
		monitor, replayer, notifier, logger)

	return &App{
		config:   c,
		logger:   logger,
		session:  sess,
		api:      api,
		repos:    repos,
		monitor:  monitor,
		engine:   engine,
		replayer: replayer,
		auth:     services.NewAuthService(api, sess),
		ledger:   ledger,
		receipts: services.NewReceiptService(api, ledger, monitor),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	defer a.repos.Close()

	go a.monitor.Run(ctx)
	go a.watchEvents(ctx)

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

func (a *App) setLoggedIn(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loggedIn = v
}

// watchEvents drives the background sync machinery: connectivity edges
// trigger a replay and (re)open the realtime feed, and wake requests from
// queued writes trigger a replay attempt when the server is reachable.
func (a *App) watchEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.monitor.Events():
			switch ev {
			case connectivity.WentOnline:
				printlnFn("server reachable, syncing...")
				if a.isLoggedIn() {
					if err := a.replayer.SyncNow(ctx); err != nil {
						a.logger.Warn(ctx, "sync failed", "error", err)
					}
					a.startFeed(ctx)
				}
			case connectivity.WentOffline:
				printlnFn("server unreachable, switching to offline mode")
				a.stopFeed()
			}
		case <-a.replayer.WakeC():
			if a.isLoggedIn() && a.monitor.IsOnline() {
				if err := a.replayer.SyncNow(ctx); err != nil {
					a.logger.Warn(ctx, "sync failed", "error", err)
				}
			}
		}
	}
}

// startFeed subscribes to the server's change stream and folds incoming
// events into the working set until the stream breaks or ctx ends.
func (a *App) startFeed(ctx context.Context) {
	a.stopFeed()

	fctx, cancel := context.WithCancel(ctx)
	ch, err := a.api.Subscribe(fctx, nil)
	if err != nil {
		cancel()
		a.logger.Warn(ctx, "failed to open realtime feed", "error", err)
		return
	}
	a.mu.Lock()
	a.feedCancel = cancel
	a.mu.Unlock()

	go func() {
		for ev := range ch {
			if err := a.engine.ApplyChange(fctx, ev); err != nil {
				a.logger.Warn(fctx, "failed to apply change event", "error", err)
			}
		}
	}()
}

func (a *App) stopFeed() {
	a.mu.Lock()
	cancel := a.feedCancel
	a.feedCancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
