// internal/bank/transfer.go

package bank

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Coordinator 負責兩帳戶間的原子轉帳。
// 所有轉帳不論方向，一律依 (id, seq) 由小到大取鎖，因此不會形成循環等待。
type Coordinator struct {
	logger *zap.Logger
}

// NewCoordinator 建立轉帳協調器；logger 可為 nil。
func NewCoordinator(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{logger: logger}
}

// Transfer 將 amount 由 src 移至 dst：
// 1) 取鎖前檢核參數與自我轉帳 → 2) 依全域順序取得兩把鎖
// 3) 以檢查式運算算出兩邊新餘額 → 4) 兩邊一起寫入並追加日誌。
// 任一步驟失敗皆不會改變任何帳戶狀態，且回傳前兩把鎖皆已釋放。
func (c *Coordinator) Transfer(src, dst *Account, amount int64) error {
	if src == nil || dst == nil {
		return ErrNotFound
	}
	if amount < 0 {
		return ErrBadAmount
	}
	// 同一把非重入鎖不可取兩次
	if src == dst {
		return ErrSameAccount
	}

	first, second := src, dst
	if second.before(first) {
		first, second = second, first
	}

	txID := uuid.NewString()

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	nextSrc, ok1 := subInt64(src.balance, amount)
	nextDst, ok2 := addInt64(dst.balance, amount)
	if !ok1 || !ok2 {
		c.logger.Debug("transfer rejected",
			zap.String("tx_id", txID),
			zap.Int64("from", src.id),
			zap.Int64("to", dst.id),
			zap.Int64("amount", amount),
			zap.Error(ErrOverflow),
		)
		return ErrOverflow
	}

	src.balance = nextSrc
	dst.balance = nextDst

	now := time.Now()
	src.logs = append(src.logs, Log{Time: now, TxID: txID, Amount: amount, Direction: DirOut, CounterID: dst.id, Note: NoteTransfer})
	dst.logs = append(dst.logs, Log{Time: now, TxID: txID, Amount: amount, Direction: DirIn, CounterID: src.id, Note: NoteTransfer})
	return nil
}

// lockAll 依全域順序鎖住所有帳戶，回傳的函式以相反順序釋放。
// accts 必須已依 before 排序且不含重複帳戶。
func lockAll(accts []*Account) (unlock func()) {
	for _, a := range accts {
		a.mu.Lock()
	}
	return func() {
		for i := len(accts) - 1; i >= 0; i-- {
			accts[i].mu.Unlock()
		}
	}
}
