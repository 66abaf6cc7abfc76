// Package ledger 定義核心領域模型與業務規則。
// 本檔定義 Account 與對外的唯讀摘要 Summary，不含任何終端機或儲存細節。

package ledger

import "banking/internal/storage"

// AccountType is fixed at creation.
type AccountType string

const (
	Normal  AccountType = "normal"
	Savings AccountType = "savings"
)

// SavingsRate 為儲蓄帳戶的利率（百分比）。
const SavingsRate = 2.5

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == Normal || t == Savings
}

// rate 回傳建立帳戶時使用的利率。
func (t AccountType) rate() float64 {
	if t == Savings {
		return SavingsRate
	}
	return 0
}

// Account represents a ledger account.
type Account struct {
	Name         string
	PINHash      string
	Balance      float64
	History      []string
	Type         AccountType
	InterestRate float64
	AccountNo    string
}

// Summary is a read-only view of an account, without credentials or history.
type Summary struct {
	Name         string
	AccountNo    string
	Type         AccountType
	Balance      float64
	InterestRate float64
	Transactions int
}

func (a *Account) summary() Summary {
	return Summary{
		Name:         a.Name,
		AccountNo:    a.AccountNo,
		Type:         a.Type,
		Balance:      a.Balance,
		InterestRate: a.InterestRate,
		Transactions: len(a.History),
	}
}

// toRecord 轉為儲存層格式；History 複製一份，避免與記憶體狀態共用底層陣列。
func (a *Account) toRecord() storage.Record {
	h := make([]string, len(a.History))
	copy(h, a.History)
	return storage.Record{
		PIN:          a.PINHash,
		Balance:      a.Balance,
		History:      h,
		Type:         string(a.Type),
		InterestRate: a.InterestRate,
		AccountNo:    a.AccountNo,
	}
}

func fromRecord(name string, r storage.Record) *Account {
	h := make([]string, len(r.History))
	copy(h, r.History)
	return &Account{
		Name:         name,
		PINHash:      r.PIN,
		Balance:      r.Balance,
		History:      h,
		Type:         AccountType(r.Type),
		InterestRate: r.InterestRate,
		AccountNo:    r.AccountNo,
	}
}
