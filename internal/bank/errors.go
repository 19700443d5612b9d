// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 呼叫端以 errors.Is 判斷；任何回傳錯誤的操作都不會改變任何帳戶餘額。

package bank

import "errors"

var (
	// ErrNotFound 代表帳戶不存在（未登記的 ID 或 nil 帳戶）。
	ErrNotFound = errors.New("account not found")

	// ErrBadAmount 代表金額為負數。
	ErrBadAmount = errors.New("amount must be >= 0")

	// ErrOverflow 代表餘額運算超出 int64 範圍；此時餘額維持原值。
	ErrOverflow = errors.New("balance overflow")

	// ErrSameAccount 代表轉帳來源與目標為同一帳戶。
	ErrSameAccount = errors.New("from and to are same")

	// ErrDuplicateID 代表 Bank 中已有相同 ID 的帳戶。
	ErrDuplicateID = errors.New("account id already exists")
)
