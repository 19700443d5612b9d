// internal/report/model.go
//
// 定義 driver 執行報告的結構模型。
// 報告只寫出、不讀回，僅記錄一次執行的帳本檢查結果與蒙地卡羅計時。
package report

import (
	"time"

	"ledger/internal/bank"
	"ledger/internal/montecarlo"
)

// Meta 為報告的中繼資料。
type Meta struct {
	Format    string    `json:"format"`         // 報告格式，例如 "json_report"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 報告產生時間
	Note      string    `json:"note,omitempty"` // 備註欄，可選
}

// LedgerResult 為帳本情境與壓力轉帳的檢查結果。
type LedgerResult struct {
	Transfers     int           `json:"transfers"`      // 併發轉帳總筆數
	Failed        int           `json:"failed"`         // 失敗筆數
	ExpectedTotal int64         `json:"expected_total"` // 初始總額
	Final         bank.Snapshot `json:"final"`          // 結束時的一致性快照
	Conserved     bool          `json:"conserved"`      // Final.Total == ExpectedTotal
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// Report 為一次 driver 執行的完整報告。
type Report struct {
	Meta     Meta             `json:"_meta"`
	Ledger   LedgerResult     `json:"ledger"`
	Sampling []montecarlo.Run `json:"sampling"`
}
