// cmd/ledger/main.go

// 本程式執行帳本併發轉帳檢查與蒙地卡羅 π 計時比較，並輸出 JSON 報告。
// 設定來源依序為 LEDGER_* 環境變數與命令列旗標；SIGINT/SIGTERM 會取消尚未完成的取樣。

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ledger/internal/config"
	"ledger/internal/report"
	"ledger/internal/runner"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("ledger run started",
		zap.Int64("points", cfg.Points),
		zap.Int("workers", cfg.Workers),
		zap.Int("transfers", cfg.Transfers),
	)

	rep, err := runner.New(cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return report.Write(os.Stdout, rep)
	}
	if err := report.WriteFile(cfg.Output, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", zap.String("path", cfg.Output))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
