package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"glucoterm/internal/config"
	"glucoterm/internal/libreview"
	"glucoterm/internal/logger"
	"glucoterm/internal/state"
	"glucoterm/internal/ui"
	"glucoterm/internal/workers"
)

// App owns the console's moving parts: the API client, the shared state
// store, the background refresh job, and the terminal UI.
type App struct {
	cfg    *config.StructuredConfig
	log    *logger.Logger
	client *libreview.Client
	store  *state.Store
	job    *workers.RefreshJob
	ui     *ui.UI
}

// New wires the application together from validated configuration.
func New(cfg *config.StructuredConfig, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}

	client := libreview.NewClient(libreview.Config{
		Email:          cfg.Account.Email,
		Password:       cfg.Account.Password,
		Version:        cfg.API.Version,
		Product:        cfg.API.Product,
		Timeout:        cfg.API.Timeout,
		VerifyTLS:      cfg.API.VerifyTLS,
		LoginURL:       cfg.API.LoginURL,
		AccountURL:     cfg.API.AccountURL,
		ConnectionsURL: cfg.API.ConnectionsURL,
	}, log)

	store := &state.Store{}
	consoleUI := ui.New(store, log)
	job := workers.NewRefreshJob(client, store, log, consoleUI.Notify)

	return &App{
		cfg:    cfg,
		log:    log,
		client: client,
		store:  store,
		job:    job,
		ui:     consoleUI,
	}
}

// Run authenticates, starts the refresh job, and blocks in the terminal UI
// until the user quits or the process receives SIGINT/SIGTERM. The refresh
// job is always stopped before Run returns.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.client.LoginAndSetup(ctx); err != nil {
		return fmt.Errorf("initial login: %w", err)
	}
	a.log.Info().Msg("authenticated, starting refresh job")

	a.job.Start(ctx, a.cfg.Workers.RefreshInterval)
	defer a.job.Stop()

	return a.ui.Run(ctx)
}
