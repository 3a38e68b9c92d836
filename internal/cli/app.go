package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/config"
	"github.com/keybtech/shopcli/internal/credential"
	"github.com/keybtech/shopcli/internal/logging"
	"github.com/keybtech/shopcli/internal/notify"
)

// App bundles the wiring every command needs: config, logger, credential
// store, API client, and the terminal notifier.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Creds    *credential.Store
	Client   *api.Client
	Notifier notify.Notifier
}

func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.NewLogger(cfg.Logger)
	if err != nil {
		// A broken log file should not take the whole CLI down.
		log = zap.NewNop()
	}

	creds, err := credential.DefaultStore()
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Creds:    creds,
		Client:   api.New(cfg.API, creds, log),
		Notifier: notify.NewTerminal(),
	}, nil
}
