package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/llehouerou/spotwave/internal/app"
	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/config"
	"github.com/llehouerou/spotwave/internal/dispatcher"
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/logging"
	"github.com/llehouerou/spotwave/internal/mpris"
	"github.com/llehouerou/spotwave/internal/notify"
	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/state"
	uistate "github.com/llehouerou/spotwave/internal/ui/state"
)

var version = "dev"

// eventBuffer bounds the events queued for the dispatcher. Sends beyond it
// are dropped and logged so the UI never blocks.
const eventBuffer = 64

// notifyCheckInterval is how often the cached playback is checked for a
// track change.
const notifyCheckInterval = time.Second

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	forceLogin := flag.Bool("login", false, "authorize again even if a token is cached")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("spotwave", version)
		return
	}

	if err := run(*configPath, *forceLogin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, forceLogin bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logPath, err := cfg.LogFilePath()
	if err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel(), logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	oauthConf := auth.NewOAuthConfig(auth.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURL:  cfg.RedirectURL(),
	})

	cache, err := tokenCache(cfg)
	if err != nil {
		return err
	}
	token, err := loadOrLogin(ctx, cache, oauthConf, forceLogin)
	if err != nil {
		return err
	}

	manager := auth.NewManager(auth.OAuthRefresher{Config: oauthConf}, token,
		auth.WithSaver(cache),
		auth.WithLogger(logger),
	)
	client := spotify.New(manager,
		spotify.WithTimeout(cfg.Timeout()),
		spotify.WithRetry(cfg.Spotify.Retry),
	)

	store := state.New()
	events := event.NewQueue(eventBuffer, logger.Named("events"))

	loop := dispatcher.NewLoop(dispatcher.New(client, manager, store), store, logger)
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx, events.C) }()

	events.Send(event.GetUserPlaylists{})
	dispatcher.StartPoller(ctx, events, manager, cfg.PollInterval())

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(store, events)
		if err != nil {
			logger.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer func() { _ = adapter.Close() }()
		}
	}

	if cfg.Playback.Notifications {
		notifier, err := notify.New()
		if err != nil {
			logger.Warn("notifications unavailable", zap.Error(err))
		} else {
			go notify.NewTrackWatcher(store, notifier, logger).Run(ctx, notifyCheckInterval)
		}
	}

	model := app.New(app.Options{
		Store:  store,
		UI:     uistate.NewStore(uistate.NewMatcher(cfg.Search.Fuzzy)),
		Events: events,
	})

	logger.Info("started", zap.String("version", version))
	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	cancel()
	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("event loop stopped", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}

func tokenCache(cfg *config.Config) (*auth.Cache, error) {
	if cfg.Spotify.TokenCache != "" {
		return auth.NewCache(cfg.Spotify.TokenCache), nil
	}
	path, err := auth.DefaultCachePath()
	if err != nil {
		return nil, fmt.Errorf("token cache path: %w", err)
	}
	return auth.NewCache(path), nil
}

// loadOrLogin returns the cached token, running the browser login when
// there is none or when forced.
func loadOrLogin(ctx context.Context, cache *auth.Cache, conf *oauth2.Config, force bool) (*oauth2.Token, error) {
	if !force {
		tok, err := cache.Load()
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, auth.ErrNoToken) {
			return nil, err
		}
	}

	fmt.Println("Opening the browser to authorize spotwave...")
	tok, err := auth.Login(ctx, conf, auth.OpenBrowser)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := cache.Save(tok); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return tok, nil
}
