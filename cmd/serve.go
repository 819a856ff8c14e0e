package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prepdesk/prepdesk/internal/auth"
	"github.com/prepdesk/prepdesk/internal/config"
	"github.com/prepdesk/prepdesk/internal/feedback"
	"github.com/prepdesk/prepdesk/internal/httpapi"
	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/llm"
	"github.com/prepdesk/prepdesk/internal/questiongen"
	"github.com/prepdesk/prepdesk/internal/report"
	"github.com/prepdesk/prepdesk/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	dbPath := cfg.DBPath
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		dbPath = p
	}
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return err
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n, err := s.Seed(ctx); err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	} else if n > 0 {
		logger.Info("seeded question bank", "questions", n)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, s.LLMCalls(), logger)
	if err != nil {
		return err
	}

	genCfg := questiongen.DefaultConfig()
	engine := interview.NewEngine(
		s.Questions(),
		map[interview.Pool]interview.Generator{
			interview.PoolHR:        questiongen.New(provider, interview.PoolHR, genCfg),
			interview.PoolTechnical: questiongen.New(provider, interview.PoolTechnical, genCfg),
		},
		feedback.New(provider, feedback.DefaultConfig()),
		cfg.Session,
		interview.WithLogger(logger),
	)

	opts := httpapi.Options{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.SMTP.Enabled() {
		opts.Mailer = report.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	server := httpapi.NewServer(engine, s.Sessions(), s.Users(), tokens, opts)

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "db", dbPath, "provider", cfg.LLM.Provider)
	return server.ListenAndServe(ctx, addr)
}
