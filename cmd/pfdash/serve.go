package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfdash/finance-dashboard/internal/config"
	"github.com/pfdash/finance-dashboard/internal/server"
	"github.com/pfdash/finance-dashboard/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.LogLevel)
			logger.SetFormatter(&log.JSONFormatter{})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var profiles store.ProfileStore
			if cfg.PGURL != "" {
				pool, err := store.Connect(ctx, cfg.PGURL)
				if err != nil {
					return err
				}
				defer pool.Close()
				profiles = store.NewPostgresStore(pool)
				logger.Info("using PostgreSQL profile store")
			} else {
				fs, err := store.NewFileStore(cfg.ProfileDir)
				if err != nil {
					return err
				}
				profiles = fs
				logger.Infof("using file profile store in %s", cfg.ProfileDir)
			}

			srv := server.New(newEngine(), profiles, logger)
			if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
				return err
			}
			logger.Info("Server exited")
			return nil
		},
	}
}
