// Package runner 組裝一次 driver 執行：
// 帳本情境與雙向併發轉帳（以一致性快照檢查守恆），以及蒙地卡羅 π 的三種計時比較。
package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ledger/internal/bank"
	"ledger/internal/config"
	"ledger/internal/montecarlo"
	"ledger/internal/report"
)

// 情境帳戶：Account(1, 100) 與 Account(2, 50)，先轉 30。
const (
	firstID, firstBalance   = 1, 100
	secondID, secondBalance = 2, 50
	openingTransfer         = 30
)

// Runner 執行帳本檢查與取樣計時。
type Runner struct {
	cfg    config.Config
	logger *zap.Logger
}

// New 建立 Runner；logger 可為 nil。
func New(cfg config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run 依序執行帳本檢查與取樣，回傳完整報告。
func (r *Runner) Run(ctx context.Context) (report.Report, error) {
	rep := report.Report{Meta: report.Meta{Version: 1}}

	ledger, err := r.RunLedger()
	if err != nil {
		return rep, err
	}
	rep.Ledger = ledger

	runs, err := r.RunSampling(ctx)
	if err != nil {
		return rep, err
	}
	rep.Sampling = runs
	return rep, nil
}

// RunLedger 執行情境轉帳後，雙向各併發 cfg.Transfers 筆轉帳 1，
// 結束時以 Bank.Snapshot 驗證總額守恆。
func (r *Runner) RunLedger() (report.LedgerResult, error) {
	start := time.Now()
	b := bank.NewBank(bank.WithLogger(r.logger))
	if _, err := b.Create(firstID, firstBalance); err != nil {
		return report.LedgerResult{}, err
	}
	if _, err := b.Create(secondID, secondBalance); err != nil {
		return report.LedgerResult{}, err
	}
	if err := b.Transfer(firstID, secondID, openingTransfer); err != nil {
		return report.LedgerResult{}, fmt.Errorf("opening transfer: %w", err)
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	n := r.cfg.Transfers
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := b.Transfer(firstID, secondID, 1); err != nil {
				failed.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if err := b.Transfer(secondID, firstID, 1); err != nil {
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	snap := b.Snapshot()
	res := report.LedgerResult{
		Transfers:     2*n + 1,
		Failed:        int(failed.Load()),
		ExpectedTotal: firstBalance + secondBalance,
		Final:         snap,
		Conserved:     snap.Total == firstBalance+secondBalance,
		Elapsed:       time.Since(start),
	}
	r.logger.Info("ledger check finished",
		zap.Int("transfers", res.Transfers),
		zap.Int("failed", res.Failed),
		zap.Int64("total", snap.Total),
		zap.Bool("conserved", res.Conserved),
		zap.Duration("elapsed", res.Elapsed),
	)
	if !res.Conserved {
		return res, fmt.Errorf("ledger total %d, want %d", snap.Total, res.ExpectedTotal)
	}
	return res, nil
}

// RunSampling 以相同點數依序執行單執行緒、任務式與共享累加器三種估計並計時。
func (r *Runner) RunSampling(ctx context.Context) ([]montecarlo.Run, error) {
	points, workers := r.cfg.Points, r.cfg.Workers
	modes := []struct {
		mode    string
		workers int
		fn      func() (float64, error)
	}{
		{montecarlo.ModeSequential, 1, func() (float64, error) { return montecarlo.EstimateSequential(points, nil) }},
		{montecarlo.ModeParallel, workers, func() (float64, error) { return montecarlo.EstimateParallel(ctx, points, workers) }},
		{montecarlo.ModeShared, workers, func() (float64, error) { return montecarlo.EstimateShared(ctx, points, workers) }},
	}

	runs := make([]montecarlo.Run, 0, len(modes))
	for _, m := range modes {
		if err := ctx.Err(); err != nil {
			return runs, err
		}
		start := time.Now()
		est, err := m.fn()
		if err != nil {
			return runs, fmt.Errorf("%s estimate: %w", m.mode, err)
		}
		run := montecarlo.Run{Mode: m.mode, Points: points, Workers: m.workers, Estimate: est, Elapsed: time.Since(start)}
		r.logger.Info("pi estimate",
			zap.String("mode", run.Mode),
			zap.Int("workers", run.Workers),
			zap.Float64("estimate", run.Estimate),
			zap.Duration("elapsed", run.Elapsed),
		)
		runs = append(runs, run)
	}
	return runs, nil
}
