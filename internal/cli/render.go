// internal/cli/render.go
//
// 本檔負責統一終端機輸出格式。
// 設計理念：
//   - 「成功訊息」與「錯誤訊息」分別由 say 與 writeErr 輸出，顏色集中於此。
//   - 領域錯誤 → 使用者訊息的對應只寫在 writeErr，各 handler 不自行組字串。
package cli

import (
	"errors"
	"fmt"
	"strings"

	"banking/internal/ledger"
)

// ANSI 色碼
const (
	Blue   = "\033[94m"
	Green  = "\033[92m"
	Red    = "\033[91m"
	Cyan   = "\033[96m"
	Yellow = "\033[93m"
	Reset  = "\033[0m"
	Bold   = "\033[1m"
)

// say 以指定顏色輸出一行訊息。
func (u *UI) say(color, format string, args ...any) {
	fmt.Fprintf(u.out, "%s%s%s\n", color, fmt.Sprintf(format, args...), Reset)
}

// writeErr 將領域錯誤轉成對使用者的訊息。
// 寫檔失敗時變更已套用在記憶體中，訊息需讓使用者知道資料尚未落地。
func (u *UI) writeErr(err error) {
	switch {
	case errors.Is(err, ledger.ErrAlreadyExists):
		u.say(Yellow, "Account already exists!")
	case errors.Is(err, ledger.ErrNotFound):
		u.say(Red, "Account not found!")
	case errors.Is(err, ledger.ErrInvalidAmount):
		u.say(Red, "Invalid amount!")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		u.say(Red, "Insufficient balance!")
	case errors.Is(err, ledger.ErrNotSavingsAccount):
		u.say(Red, "Not a savings account!")
	case errors.Is(err, ledger.ErrIncorrectPIN):
		u.say(Red, "Incorrect PIN!")
	case errors.Is(err, ledger.ErrIncorrectAdminPassword):
		u.say(Red, "Incorrect admin password!")
	case errors.Is(err, ledger.ErrInvalidName):
		u.say(Red, "Account name must not be empty!")
	case errors.Is(err, ledger.ErrPersistenceUnavailable):
		u.say(Red, "Warning: changes could not be saved (%v)", err)
	default:
		u.say(Red, "Error: %v", err)
	}
}

// capitalize 將帳戶類型首字大寫，例如 savings → Savings。
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// money 以貨幣符號輸出金額。
func money(amount float64) string {
	return ledger.Currency + ledger.FormatAmount(amount)
}
