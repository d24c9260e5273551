package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "qtermlab: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session, err := NewSession(
		NewStatevectorSimulator(cfg.MaxQubits),
		NewSeededSource(seed),
		cfg.CacheSize,
		WithPolicy(cfg.Policy),
		WithLimits(cfg.Limits()),
		WithLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("session ready", zap.Uint64("seed", seed), zap.Stringer("policy", cfg.Policy))

	if cfg.ServeAddr != "" {
		srv := &http.Server{
			Addr:              cfg.ServeAddr,
			Handler:           NewServer(session, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info("starting server", zap.String("addr", cfg.ServeAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}

	p := tea.NewProgram(initialModel(session, cfg, log), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
