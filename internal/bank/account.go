// Package bank 定義核心領域模型：帳戶、轉帳協調器與帳戶登記表。
// 每個帳戶持有自己的互斥鎖；跨帳戶轉帳依全域順序取鎖以避免死結。
// 金額以 int64 的最小貨幣單位儲存。
package bank

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Log directions and notes.
const (
	DirIn  = "in"
	DirOut = "out"

	NoteDeposit  = "deposit"
	NoteWithdraw = "withdraw"
	NoteTransfer = "transfer"
)

// seqCounter 提供建立序號，作為相同 ID 帳戶之間的次要排序鍵。
var seqCounter atomic.Uint64

// Log represents a transaction record.
type Log struct {
	Time      time.Time `json:"time"`
	TxID      string    `json:"tx_id,omitempty"`
	Amount    int64     `json:"amount"`
	Direction string    `json:"direction"`
	CounterID int64     `json:"counter_account,omitempty"`
	Note      string    `json:"note"`
}

// Account represents a bank account.
// balance 與 logs 只能在持有 mu 時讀寫。
type Account struct {
	id  int64
	seq uint64

	mu      sync.Mutex
	balance int64
	logs    []Log
}

// NewAccount 以外部指定的 ID 與初始餘額建立帳戶。
// 此處不檢查 ID 唯一性；需要唯一性時請透過 Bank.Create。
func NewAccount(id, initial int64) *Account {
	return &Account{id: id, seq: seqCounter.Add(1), balance: initial}
}

// ID 回傳帳戶 ID（建立後不變，無需加鎖）。
func (a *Account) ID() int64 { return a.id }

// Balance 在鎖內讀取餘額，回傳值必為呼叫期間某一時刻的真實餘額。
func (a *Account) Balance() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit 存款。負數金額回傳 ErrBadAmount；溢位回傳 ErrOverflow 且餘額不變。
func (a *Account) Deposit(amount int64) error {
	_, err := a.apply(amount, DirIn, NoteDeposit)
	return err
}

// Withdraw 提款。不檢查餘額是否足夠，允許透支（餘額為負）。
func (a *Account) Withdraw(amount int64) error {
	_, err := a.apply(amount, DirOut, NoteWithdraw)
	return err
}

// Logs 回傳交易日誌的拷貝，避免外部修改內部切片。
func (a *Account) Logs() []Log {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Log, len(a.logs))
	copy(out, a.logs)
	return out
}

// apply 為單一帳戶的存提款共用路徑：驗證在取鎖前完成，
// 計算、寫入與日誌在同一臨界區內完成，並回傳變更後的餘額。
func (a *Account) apply(amount int64, dir, note string) (int64, error) {
	if amount < 0 {
		return 0, ErrBadAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		next int64
		ok   bool
	)
	if dir == DirIn {
		next, ok = addInt64(a.balance, amount)
	} else {
		next, ok = subInt64(a.balance, amount)
	}
	if !ok {
		return a.balance, ErrOverflow
	}
	a.balance = next
	a.logs = append(a.logs, Log{Time: time.Now(), Amount: amount, Direction: dir, Note: note})
	return next, nil
}

// before 定義全域取鎖順序：先比 ID，ID 相同再比建立序號。
func (a *Account) before(b *Account) bool {
	if a.id != b.id {
		return a.id < b.id
	}
	return a.seq < b.seq
}

func addInt64(x, y int64) (int64, bool) {
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return 0, false
	}
	return x + y, true
}

func subInt64(x, y int64) (int64, bool) {
	if (y > 0 && x < math.MinInt64+y) || (y < 0 && x > math.MaxInt64+y) {
		return 0, false
	}
	return x - y, true
}
