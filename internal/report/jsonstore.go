// internal/report/jsonstore.go
//
// 提供報告的 JSON 輸出。寫檔採「原子寫入」：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 中途失敗不會留下寫到一半的報告。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

const format = "json_report"

// Write 將報告以縮排 JSON 寫至 w，並補上 Meta.Format 與時間戳。
func Write(w io.Writer, r Report) error {
	r.Meta.Format = format
	if r.Meta.Timestamp.IsZero() {
		r.Meta.Timestamp = time.Now()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile 將報告寫入 path：
//  1. 寫入 path+".tmp" 暫存檔。
//  2. 寫入並關閉成功後以 os.Rename() 取代正式檔案。
func WriteFile(path string, r Report) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, path)
}
