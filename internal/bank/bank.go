// internal/bank/bank.go

// Bank 為帳戶登記表：以 ID 索引帳戶並強制 ID 唯一。
// mu 只保護 accts 這張 map，從不保護任何餘額；餘額一律由各帳戶自己的鎖保護，
// 且持有 mu 時不會去取帳戶鎖。

package bank

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Bank 管理全系統帳戶並轉交轉帳給 Coordinator。
type Bank struct {
	mu     sync.RWMutex
	accts  map[int64]*Account
	coord  *Coordinator
	logger *zap.Logger
}

// Option configures a Bank.
type Option func(*Bank)

// WithLogger 注入 zap logger；未指定時使用 zap.NewNop()。
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}

// Balance 為快照中的單一帳戶餘額。
type Balance struct {
	ID      int64 `json:"id"`
	Balance int64 `json:"balance"`
}

// Snapshot 為同一時刻所有帳戶餘額的一致性快照。
type Snapshot struct {
	Accounts []Balance `json:"accounts"`
	Total    int64     `json:"total"`
}

// NewBank 建立空白銀行實例。
func NewBank(opts ...Option) *Bank {
	b := &Bank{accts: make(map[int64]*Account), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.coord = NewCoordinator(b.logger)
	return b
}

// Create 以指定 ID 與初始餘額建立並登記帳戶；ID 已存在時回傳 ErrDuplicateID。
func (b *Bank) Create(id, initial int64) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accts[id]; ok {
		return nil, fmt.Errorf("create %d: %w", id, ErrDuplicateID)
	}
	a := NewAccount(id, initial)
	b.accts[id] = a
	b.logger.Debug("account created", zap.Int64("id", id), zap.Int64("balance", initial))
	return a, nil
}

// Get 依 ID 取得帳戶；若不存在回傳 ErrNotFound。
func (b *Bank) Get(id int64) (*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// List 回傳所有帳戶，依全域取鎖順序排序。
func (b *Bank) List() []*Account {
	b.mu.RLock()
	out := make([]*Account, 0, len(b.accts))
	for _, a := range b.accts {
		out = append(out, a)
	}
	b.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].before(out[j]) })
	return out
}

// Deposit 存款並回傳存款後餘額。
func (b *Bank) Deposit(id, amount int64) (int64, error) {
	a, err := b.Get(id)
	if err != nil {
		return 0, err
	}
	return a.apply(amount, DirIn, NoteDeposit)
}

// Withdraw 提款並回傳提款後餘額（可為負）。
func (b *Bank) Withdraw(id, amount int64) (int64, error) {
	a, err := b.Get(id)
	if err != nil {
		return 0, err
	}
	return a.apply(amount, DirOut, NoteWithdraw)
}

// Transfer 依 ID 查詢兩邊帳戶後交給 Coordinator 執行原子轉帳。
func (b *Bank) Transfer(fromID, toID, amount int64) error {
	if fromID == toID {
		return ErrSameAccount
	}
	from, err := b.Get(fromID)
	if err != nil {
		return err
	}
	to, err := b.Get(toID)
	if err != nil {
		return err
	}
	return b.coord.Transfer(from, to, amount)
}

// Logs 回傳指定帳戶的交易日誌拷貝。
func (b *Bank) Logs(id int64) ([]Log, error) {
	a, err := b.Get(id)
	if err != nil {
		return nil, err
	}
	return a.Logs(), nil
}

// Snapshot 依全域順序鎖住所有帳戶後一次讀出全部餘額。
// 與轉帳使用相同順序，因此不會與轉帳互相死結，也不會看到轉了一半的狀態。
func (b *Bank) Snapshot() Snapshot {
	accts := b.List()
	unlock := lockAll(accts)
	defer unlock()

	s := Snapshot{Accounts: make([]Balance, 0, len(accts))}
	for _, a := range accts {
		s.Accounts = append(s.Accounts, Balance{ID: a.id, Balance: a.balance})
		s.Total += a.balance
	}
	return s
}
