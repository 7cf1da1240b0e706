package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gradesheets/internal/config"
	"gradesheets/internal/logging"
	"gradesheets/internal/server"
	"gradesheets/internal/util"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("config", "", "config file (default: config.toml next to the executable)")
	cmd.Flags().Int("port", 0, "listen port (ignored when config.toml or GRADESHEETS_PORT sets one)")
	cmd.Flags().Bool("dev", false, "development mode")
	cmd.Flags().String("data-dir", "", "data directory (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	port, _ := cmd.Flags().GetInt("port")
	devMode, _ := cmd.Flags().GetBool("dev")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cfg, info, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", info.Path, err)
	}

	// 命令行参数覆盖配置
	if port > 0 && !info.PortSpecified {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg, logger, version)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr), zap.String("config", info.Path))
		errCh <- srv.Run(addr)
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		if err := util.OpenBrowser(url); err != nil {
			logger.Warn("could not open browser", zap.String("url", url), zap.Error(err))
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Open %s in your browser. Press Ctrl+C to stop.\n", url)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
