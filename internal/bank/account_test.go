// internal/bank/account_test.go
//
// 單一帳戶操作測試：存提款、透支、金額檢核、溢位與併發存款不遺失。

package bank

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDepositWithdraw(t *testing.T) {
	a := NewAccount(1, 100)

	require.NoError(t, a.Deposit(50))
	require.NoError(t, a.Withdraw(30))
	assert.Equal(t, int64(120), a.Balance())
	assert.Equal(t, int64(1), a.ID())

	// 不檢查餘額是否足夠，允許透支
	require.NoError(t, a.Withdraw(500))
	assert.Equal(t, int64(-380), a.Balance())

	// 金額 0 允許，餘額不變
	require.NoError(t, a.Deposit(0))
	assert.Equal(t, int64(-380), a.Balance())
}

func TestAccountRejectsNegativeAmount(t *testing.T) {
	a := NewAccount(1, 100)

	assert.ErrorIs(t, a.Deposit(-1), ErrBadAmount)
	assert.ErrorIs(t, a.Withdraw(-1), ErrBadAmount)
	assert.Equal(t, int64(100), a.Balance())
	assert.Empty(t, a.Logs())
}

func TestAccountOverflowLeavesBalance(t *testing.T) {
	hi := NewAccount(1, math.MaxInt64)
	assert.ErrorIs(t, hi.Deposit(1), ErrOverflow)
	assert.Equal(t, int64(math.MaxInt64), hi.Balance())

	lo := NewAccount(2, math.MinInt64)
	assert.ErrorIs(t, lo.Withdraw(1), ErrOverflow)
	assert.Equal(t, int64(math.MinInt64), lo.Balance())

	// 失敗後鎖已釋放，後續操作可正常完成
	require.NoError(t, hi.Withdraw(1))
	assert.Equal(t, int64(math.MaxInt64-1), hi.Balance())
}

func TestAccountLogs(t *testing.T) {
	a := NewAccount(1, 0)
	require.NoError(t, a.Deposit(200))
	require.NoError(t, a.Withdraw(50))

	logs := a.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, DirIn, logs[0].Direction)
	assert.Equal(t, NoteDeposit, logs[0].Note)
	assert.Equal(t, int64(200), logs[0].Amount)
	assert.Equal(t, DirOut, logs[1].Direction)
	assert.Equal(t, NoteWithdraw, logs[1].Note)
	assert.False(t, logs[1].Time.IsZero())

	// 回傳的是拷貝
	logs[0].Amount = 999
	assert.Equal(t, int64(200), a.Logs()[0].Amount)
}

// TestConcurrentDepositsNoLostUpdates 驗證 T 個 goroutine 各存 K 次後餘額為 T*K。
func TestConcurrentDepositsNoLostUpdates(t *testing.T) {
	const workers = 100
	perWorker := 10_000
	if testing.Short() {
		perWorker = 1_000
	}

	a := NewAccount(1, 0)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for k := 0; k < perWorker; k++ {
				if err := a.Deposit(1); err != nil {
					t.Errorf("deposit err: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*perWorker), a.Balance())
}

func TestAccountSeqIsMonotonic(t *testing.T) {
	a := NewAccount(5, 0)
	b := NewAccount(5, 0)
	assert.True(t, a.before(b))
	assert.False(t, b.before(a))

	c := NewAccount(1, 0)
	assert.True(t, c.before(a))
}

func TestCheckedArithmetic(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(x, y int64) (int64, bool)
		x, y   int64
		want   int64
		wantOK bool
	}{
		{"add", addInt64, 1, 2, 3, true},
		{"add max", addInt64, math.MaxInt64, 1, 0, false},
		{"add negative min", addInt64, math.MinInt64, -1, 0, false},
		{"sub", subInt64, 5, 7, -2, true},
		{"sub min", subInt64, math.MinInt64, 1, 0, false},
		{"sub negative max", subInt64, math.MaxInt64, -1, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.fn(tc.x, tc.y)
			assert.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
