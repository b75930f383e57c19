package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/clubhouse-go/internal/config"
	"github.com/mcoot/clubhouse-go/internal/factory"
	"github.com/mcoot/clubhouse-go/internal/web"
)

var version = "dev" // Set during build

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "clubhouse",
	Short:         "Members-only message board",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Clubhouse is a members-only message board.

Anyone can read the board; posting requires club membership, unlocked with a
passcode. Configuration is taken from the environment:

  LISTEN_ADDR         address to listen on (default :8080)
  ENVIRONMENT         development or production
  STORAGE_TYPE        memory or postgres
  DATABASE_DSN        postgres connection string
  SESSION_STORE_TYPE  memory or redis
  REDIS_URL           redis connection URL
  SESSION_TTL         session lifetime, e.g. 168h
  MEMBER_PASSCODE     passcode for the member tier
  ADMIN_PASSCODE      passcode for the admin tier`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := factory.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing app", slog.String("error", err.Error()))
		}
	}()

	router := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		SessionManager:    app.SessionManager,
		MembershipService: app.MembershipService,
		BoardService:      app.BoardService,
		StaticDir:         findStaticDir(),
		SecureCookies:     cfg.Environment == config.EnvProduction,
	})

	serverConfig := web.DefaultServerConfig()
	serverConfig.Addr = cfg.ListenAddr
	server := web.NewServer(router, serverConfig, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
