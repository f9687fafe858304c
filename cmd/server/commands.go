package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/snapfeed/backend/internal/router"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/anonto42/snapfeed/backend/pkg/config"
	"github.com/anonto42/snapfeed/backend/pkg/firebase"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and apply SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg, logger)
		if err != nil {
			return err
		}
		defer db.CloseDB()
		return db.Migrate(cfg.MigrationsDir)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fixture posts for the oldest user",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg, logger)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		repos := router.PostgresRepositories(db.Postgres)
		res, err := services.NewSeedService(repos.Posts, repos.Users, logger).SeedPosts(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := db.Migrate(cfg.MigrationsDir); err != nil {
			return err
		}
	}

	verifier, closeVerifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeVerifier()

	e := router.New(cfg, router.PostgresRepositories(db.Postgres), verifier, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newVerifier builds the session verifier for the configured provider.
func newVerifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (identity.Verifier, func(), error) {
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using firebase session verification")
		return firebase.NewTokenVerifier(app.AuthClient), func() {}, nil
	default:
		if cfg.JWKSURL != "" {
			v, err := identity.NewJWKSVerifier(cfg.JWKSURL, cfg.JWTIssuer, func(err error) {
				logger.Warn("jwks refresh failed", zap.Error(err))
			})
			if err != nil {
				return nil, nil, err
			}
			logger.Info("using jwks session verification", zap.String("jwks_url", cfg.JWKSURL))
			return v, v.Close, nil
		}
		v, err := identity.NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using hmac session verification")
		return v, v.Close, nil
	}
}
