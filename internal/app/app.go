package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/NivBraz/dictionary-service/internal/config"
	"github.com/NivBraz/dictionary-service/internal/protocol"
	"github.com/NivBraz/dictionary-service/internal/server"
	"github.com/NivBraz/dictionary-service/pkg/dictionary"
)

// App represents the main application
type App struct {
	config     *config.Config
	dictionary *dictionary.Dictionary
	server     *server.Server
}

// New loads the dictionary and prepares the server. It fails if the
// dictionary file cannot be loaded.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var out io.Writer = io.Discard
	if cfg.Dictionary.ShowProgress {
		out = os.Stderr
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Loading dictionary..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	d, err := dictionary.LoadFile(cfg.Dictionary.Path, bar)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	bar.Finish()
	log.Printf("Loaded %d words from %s", d.Len(), cfg.Dictionary.Path)

	interp := protocol.New(d, dictionary.NewFileSink(cfg.Dictionary.Path, d))

	srv := server.New(server.Config{
		Address:           cfg.Address(),
		GracePeriod:       time.Duration(cfg.Server.GracePeriod) * time.Second,
		MaxWorkers:        cfg.Session.MaxWorkers,
		RequestsPerSecond: cfg.Session.RequestsPerSecond,
		Burst:             cfg.Session.Burst,
	}, interp)

	return &App{
		config:     cfg,
		dictionary: d,
		server:     srv,
	}, nil
}

// Start begins accepting connections in the background.
func (a *App) Start(ctx context.Context) error {
	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Addr is the address the server listens on once started.
func (a *App) Addr() net.Addr {
	return a.server.Addr()
}

// Stop shuts the server down. Every mutation was already saved when it
// was applied, so the dictionary file is not touched here.
func (a *App) Stop() {
	a.server.Stop()
}

// Run serves clients until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.Stop()
	return nil
}
