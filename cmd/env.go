package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/career"
	"github.com/compasshq/compass/internal/config"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/llm"
	"github.com/compasshq/compass/internal/logging"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/store"
)

// env is everything a command needs, built from flags, config and the
// environment.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *services.Services
}

type envOptions struct {
	// interactive sends logs to the log file; otherwise --verbose logs to
	// stderr.
	interactive bool
	// ai builds the LLM provider and the flows.
	ai bool
}

// newEnv loads configuration, opens the store and wires the services. The
// remembered session, if still valid, is resumed.
func newEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cmd, cfg, opts.interactive)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	tokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		st.Close()
		return nil, err
	}

	svc := &services.Services{
		Auth: auth.NewService(st.UserRepo(), st.SessionRepo(), auth.Options{
			SessionTTL: cfg.SessionTTL,
			Logger:     logger,
		}),
		Profiles:  profile.NewService(st.ProfileRepo()),
		History:   st.HistoryRepo(),
		TokenPath: tokenPath,
		Logger:    logger,
	}

	if opts.ai {
		provider, err := llm.NewProviderFromConfig(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			logger.Warn("LLM provider not configured", zap.Error(err))
			if opts.interactive {
				fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
				fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
			}
		} else {
			svc.Quizzes = quizgen.New(provider, quizgen.DefaultConfig(), logger)
			svc.Careers = career.New(provider, career.DefaultConfig(), logger)
			svc.Guidance = guidance.New(provider, guidance.DefaultConfig(), logger)
		}
	}

	svc.Resume(ctx)
	return &env{cfg: cfg, logger: logger, store: st, svc: svc}, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, interactive bool) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}

	lopts := logging.Options{Level: level, File: cfg.Log.File}
	switch {
	case !interactive && verbose:
		lopts.Stderr = true
	case !interactive:
		// Non-interactive commands stay quiet unless asked.
		return zap.NewNop(), nil
	case lopts.File == "":
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		lopts.File = filepath.Join(dir, "compass.log")
	}
	logger, err := logging.New(lopts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.store.Close()
}

// requireAI returns an error when no LLM provider could be built.
func (e *env) requireAI() error {
	if e.svc.Quizzes == nil {
		return fmt.Errorf("%w; set COMPASS_LLM_PROVIDER and an API key, or add a config file", services.ErrAIUnavailable)
	}
	return nil
}

// warnAnonymous tells the user that results will not be saved.
func (e *env) warnAnonymous(cmd *cobra.Command) {
	if e.svc.Account == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Not signed in: results will not be saved. Sign in from the app to keep your history.")
	}
}

// requireAccount returns an error when no session was resumed.
func (e *env) requireAccount() error {
	if e.svc.Account == nil {
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in: run compass and sign in first")

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok && os.Getenv(key) != ""
}
