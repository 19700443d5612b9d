// Package montecarlo 以蒙地卡羅法估計 π。
// 與帳本無共享狀態；提供單執行緒、任務式 (errgroup join/reduce) 與
// 共享累加器（單一粗粒度鎖）三種做法，供 driver 計時比較。
package montecarlo

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Modes reported in Run.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
	ModeShared     = "shared"
)

// 每處理這麼多點檢查一次 ctx 是否已取消。
const checkEvery = 1 << 16

var (
	ErrNoPoints  = errors.New("points must be > 0")
	ErrNoWorkers = errors.New("workers must be > 0")
)

// Run 記錄一次計時估計的結果。
type Run struct {
	Mode     string        `json:"mode"`
	Points   int64         `json:"points"`
	Workers  int           `json:"workers"`
	Estimate float64       `json:"estimate"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// EstimateSequential 以單一亂數源估計 π；rng 為 nil 時使用新的隨機種子。
func EstimateSequential(points int64, rng *rand.Rand) (float64, error) {
	if points <= 0 {
		return 0, ErrNoPoints
	}
	if rng == nil {
		rng = newRand()
	}
	inside, err := count(context.Background(), points, rng)
	if err != nil {
		return 0, err
	}
	return 4 * float64(inside) / float64(points), nil
}

// EstimateParallel 將點數平均分給 workers 個任務，各自回傳圈內點數後再加總。
func EstimateParallel(ctx context.Context, points int64, workers int) (float64, error) {
	parts, err := split(points, workers)
	if err != nil {
		return 0, err
	}

	results := make([]int64, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range parts {
		g.Go(func() error {
			inside, err := count(gctx, n, newRand())
			results[i] = inside
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for _, r := range results {
		total += r
	}
	return 4 * float64(total) / float64(points), nil
}

// EstimateShared 讓每個 worker 把部分結果加進同一個以互斥鎖保護的累加器。
func EstimateShared(ctx context.Context, points int64, workers int) (float64, error) {
	parts, err := split(points, workers)
	if err != nil {
		return 0, err
	}

	var (
		mu       sync.Mutex
		total    int64
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	wg.Add(len(parts))
	for _, n := range parts {
		go func() {
			defer wg.Done()
			inside, err := count(ctx, n, newRand())
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			mu.Lock()
			total += inside
			mu.Unlock()
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return 0, firstErr
	}
	return 4 * float64(total) / float64(points), nil
}

// Split 將 points 分成 workers 份，餘數由前面的 worker 各多分一點。
func Split(points int64, workers int) []int64 {
	parts, err := split(points, workers)
	if err != nil {
		return nil
	}
	return parts
}

func split(points int64, workers int) ([]int64, error) {
	if points <= 0 {
		return nil, ErrNoPoints
	}
	if workers <= 0 {
		return nil, ErrNoWorkers
	}
	if int64(workers) > points {
		workers = int(points)
	}
	per, rem := points/int64(workers), points%int64(workers)
	out := make([]int64, workers)
	for i := range out {
		out[i] = per
		if int64(i) < rem {
			out[i]++
		}
	}
	return out, nil
}

// count 產生 n 個 [-1, 1)² 內的隨機點並回傳落在單位圓內的數量。
func count(ctx context.Context, n int64, rng *rand.Rand) (int64, error) {
	var inside int64
	for i := int64(0); i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		x := rng.Float64()*2 - 1
		y := rng.Float64()*2 - 1
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return inside, nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
