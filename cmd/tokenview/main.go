package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/tokenview/internal/config"
	"github.com/rovshanmuradov/tokenview/internal/dexscreener"
	"github.com/rovshanmuradov/tokenview/internal/export"
	"github.com/rovshanmuradov/tokenview/internal/gasfee"
	"github.com/rovshanmuradov/tokenview/internal/httpx"
	"github.com/rovshanmuradov/tokenview/internal/logger"
	"github.com/rovshanmuradov/tokenview/internal/metrics"
	"github.com/rovshanmuradov/tokenview/internal/ui"
)

const logTailSize = 200

func main() {
	root := &cobra.Command{
		Use:          "tokenview",
		Short:        "DexScreener token lookup and gas price viewer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file path (default ./tokenview.{yaml,json,toml})")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :9100")
	pf.Duration("timeout", config.DefaultRequestTimeout, "per-request timeout")
	pf.String("network", "", "network filter (solana, ethereum, bsc, polygon)")

	root.Flags().String("mode", config.ModeSearch, "start screen (search, gas)")
	root.Flags().String("log-file", config.DefaultLogFile, "log file written while the TUI is running")
	root.Flags().Duration("refresh-interval", 0, "gas view auto refresh, 0 disables")
	root.Flags().Bool("surface-errors", false, "show failure details under the placeholder")
	root.Flags().Bool("cancel-superseded", true, "abort a request when a newer one is issued")

	lookupCmd := &cobra.Command{
		Use:   "lookup <query>",
		Short: "Look up a token by address or ticker and print its pair card",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}
	addExportFlags(lookupCmd)
	root.AddCommand(lookupCmd)

	gasCmd := &cobra.Command{
		Use:   "gas",
		Short: "Print the average gas price series",
		Args:  cobra.NoArgs,
		RunE:  runGas,
	}
	addExportFlags(gasCmd)
	root.AddCommand(gasCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "also write the series to this directory")
	cmd.Flags().String("format", string(export.FormatCSV), "export format (csv, json)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Load(cfgFile, cmd.Flags())
}

// sources builds the HTTP clients shared by every command
func sources(cfg *config.Config, log *zap.Logger) (*dexscreener.Client, *gasfee.Client) {
	transport := httpx.NewClient(httpx.Options{
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		UserAgent: cfg.UserAgent,
	}, log)

	return dexscreener.NewClient(cfg.DexScreenerURL, transport, log),
		gasfee.NewClient(cfg.GasURL, transport, log)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, logs go to the file and the on-screen tail.
	logBuffer := logger.NewLogBuffer(logTailSize)
	fileCfg := logger.DefaultFileConfig()
	fileCfg.LogFile = cfg.LogFile
	fileCfg.Level = cfg.LogLevel
	appLogger, err := logger.NewFileLogger(fileCfg, logBuffer)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("starting tokenview",
		zap.String("mode", cfg.Mode),
		zap.String("network", cfg.DefaultNetwork),
		zap.Duration("timeout", cfg.RequestTimeout))

	collector := metrics.NewCollector()
	pairs, gas := sources(cfg, appLogger)
	services := ui.NewRealServiceProvider(ctx, cfg, appLogger, pairs, gas, collector, logBuffer)

	g, gctx := errgroup.WithContext(ctx)
	uiCtx, cancelUI := context.WithCancel(gctx)

	g.Go(func() error {
		defer stop()
		recovery := ui.NewRecoveryHandler(appLogger, func() (tea.Model, []tea.ProgramOption) {
			model := ui.NewSafeUIWrapper(NewAppModel(services, ui.ParseRoute(cfg.Mode)), appLogger)
			return model, []tea.ProgramOption{tea.WithAltScreen()}
		})
		return recovery.RunWithRecovery(uiCtx)
	})

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return collector.Serve(gctx, cfg.MetricsAddr, appLogger.Named("metrics"))
		})
	}

	err = g.Wait()
	cancelUI()
	appLogger.Info("tokenview stopped", zap.Error(err))
	return err
}

func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.CreatePrettyLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return log, nil
}

func signalContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	return ctx, func() {
		cancel()
		stop()
	}
}
