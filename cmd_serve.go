package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Nav/constants"
	"Nav/finder"
	"Nav/metrics"
	"Nav/registry"
	"Nav/server"
)

func newServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket query service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := constants.Load(configFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, !cfg.IsServer())
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cfg.IsServer() {
				gin.SetMode(gin.ReleaseMode)
			}

			reg := registry.New(logger)
			for _, m := range cfg.Maps {
				if _, err := reg.LoadFile(m.Name, m.File); err != nil {
					return err
				}
			}
			metrics.GridsLoaded.Set(float64(reg.Len()))

			pool, err := finder.NewPool(cfg.PoolSize, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			strategy, err := finder.ParseStrategy(cfg.Strategy)
			if err != nil {
				return err
			}
			srv := server.New(reg, pool, server.Options{
				Strategy:    strategy,
				CellSize:    cfg.CellSize,
				CORSOrigins: cfg.CORSOrigins,
				MapsDir:     cfg.MapsDir,
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("nav serving",
				zap.String("addr", cfg.Addr()),
				zap.Strings("maps", reg.Names()),
				zap.String("strategy", string(strategy)),
				zap.Int("pool_size", cfg.PoolSize))
			return srv.Run(ctx, cfg.Addr())
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", os.Getenv("NAV_CONFIG"), "YAML config file (env: NAV_CONFIG)")
	return cmd
}
