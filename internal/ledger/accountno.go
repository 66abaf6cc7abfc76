// internal/ledger/accountno.go
//
// 帳號產生：8 位數字，於臨界區內以「產生 → 檢查重複」迴圈取得，嘗試次數有上限。
package ledger

import (
	"fmt"
	"strconv"
)

const (
	accountNoMin = 10000000
	accountNoMax = 99999999

	// MaxAccountNumberAttempts 為產生帳號的預設嘗試上限。
	MaxAccountNumberAttempts = 1000
)

// GenerateAccountNumber 回傳尚未被任何帳戶使用的 8 位數帳號。
func (s *Store) GenerateAccountNumber() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked()
}

func (s *Store) generateLocked() (string, error) {
	for i := 0; i < s.maxAttempts; i++ {
		no := strconv.Itoa(accountNoMin + s.intn(accountNoMax-accountNoMin+1))
		if !s.accountNoUsedLocked(no) {
			return no, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAccountNumberSpaceExhausted, s.maxAttempts)
}

// 每次嘗試都完整掃描；帳號沒有另建索引
func (s *Store) accountNoUsedLocked(no string) bool {
	for _, a := range s.accts {
		if a.AccountNo == no {
			return true
		}
	}
	return false
}
