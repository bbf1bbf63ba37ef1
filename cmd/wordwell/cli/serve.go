package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wordwell/wordwell/internal/config"
	"github.com/wordwell/wordwell/internal/server"
	"github.com/wordwell/wordwell/internal/service"
	"github.com/wordwell/wordwell/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Wordwell API server",
		Long:  "Start the HTTP server that exposes the public word endpoints and the admin word management API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, fallback JWT secret)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("dev", cmd.Flags().Lookup("dev"))

	return cmd
}

func runServe() error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	s, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", "driver", cfg.Database.Driver)

	authSvc := service.NewAuthService(s, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryMinutes)

	hasAdmin, err := s.HasAnyAdmin(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin", "error", err)
	}
	if !hasAdmin {
		logger.Warn("no admin account found, run: wordwell user create --admin")
	}

	srv := server.New(cfg, s, authSvc, logger)

	fmt.Printf("→ Wordwell\n")
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ OpenAPI:   http://%s:%d/openapi.json\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:    http://%s:%d/health/alive\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()

	return srv.ListenAndServe()
}
