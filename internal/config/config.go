// Package config 讀取 driver 設定：先讀 LEDGER_* 環境變數，再由命令列旗標覆寫。
package config

import (
	"errors"
	"flag"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvPoints    = "LEDGER_POINTS"
	EnvWorkers   = "LEDGER_WORKERS"
	EnvTransfers = "LEDGER_TRANSFERS"
	EnvOutput    = "LEDGER_OUTPUT"
	EnvDebug     = "LEDGER_DEBUG"
)

var (
	ErrPoints    = errors.New("points must be > 0")
	ErrWorkers   = errors.New("workers must be > 0")
	ErrTransfers = errors.New("transfers must be >= 0")
)

// Config 為 driver 的完整設定。
type Config struct {
	Points    int64  // 蒙地卡羅取樣點數
	Workers   int    // 平行 worker 數，預設為 GOMAXPROCS
	Transfers int    // 每個方向的併發轉帳筆數
	Output    string // 報告輸出路徑；空字串表示輸出至 stdout
	Debug     bool   // 使用 development logger 並開啟 debug 等級
}

// Load 由環境變數建立設定，未設定或無法解析者使用預設值。
func Load() Config {
	return Config{
		Points:    GetenvIntOrDefault(EnvPoints, 50_000_000),
		Workers:   int(GetenvIntOrDefault(EnvWorkers, int64(runtime.GOMAXPROCS(0)))),
		Transfers: int(GetenvIntOrDefault(EnvTransfers, 1000)),
		Output:    GetenvOrDefault(EnvOutput, ""),
		Debug:     GetenvBoolOrDefault(EnvDebug, false),
	}
}

// BindFlags 將旗標綁定到 c，旗標預設值為 c 目前的值。
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Points, "points", c.Points, "number of Monte Carlo sample points")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel workers for sampling")
	fs.IntVar(&c.Transfers, "transfers", c.Transfers, "concurrent transfers per direction")
	fs.StringVar(&c.Output, "out", c.Output, "report file path (stdout when empty)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
}

// Validate 檢查設定值範圍。
func (c Config) Validate() error {
	switch {
	case c.Points <= 0:
		return ErrPoints
	case c.Workers <= 0:
		return ErrWorkers
	case c.Transfers < 0:
		return ErrTransfers
	}
	return nil
}

// GetenvOrDefault 回傳環境變數值；未設定或僅含空白時回傳 def。
func GetenvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// GetenvIntOrDefault 以十進位解析環境變數；失敗時回傳 def。
func GetenvIntOrDefault(key string, def int64) int64 {
	n, err := strconv.ParseInt(GetenvOrDefault(key, ""), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// GetenvBoolOrDefault 以 strconv.ParseBool 解析環境變數；失敗時回傳 def。
func GetenvBoolOrDefault(key string, def bool) bool {
	b, err := strconv.ParseBool(GetenvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return b
}
