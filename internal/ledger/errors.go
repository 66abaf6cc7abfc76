// internal/ledger/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤屬於商業邏輯層級（非系統錯誤），由 CLI 層轉換成對使用者顯示的訊息。
// 呼叫端一律以 errors.Is 比對，底層 I/O 錯誤會以 %w 包裝在 ErrPersistenceUnavailable 之下。

package ledger

import "errors"

var (
	// ErrAlreadyExists 代表帳戶名稱已被使用。
	ErrAlreadyExists = errors.New("account already exists")

	// ErrNotFound 代表帳戶不存在。
	ErrNotFound = errors.New("account not found")

	// ErrInvalidAmount 代表金額非法（<=0、NaN 或無限大）。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance 代表餘額不足，提款失敗。
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNotSavingsAccount 代表對一般帳戶計息。
	ErrNotSavingsAccount = errors.New("not a savings account")

	// ErrIncorrectPIN 代表 PIN 比對失敗。
	ErrIncorrectPIN = errors.New("incorrect PIN")

	// ErrIncorrectAdminPassword 代表管理員密碼比對失敗。
	ErrIncorrectAdminPassword = errors.New("incorrect admin password")

	// ErrPersistenceUnavailable 代表資料檔無法讀取、解析或寫入。
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrInvalidName 代表帳戶名稱為空白。
	ErrInvalidName = errors.New("account name must not be empty")

	// ErrInvalidAccountType 代表帳戶類型不是 normal / savings。
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrAccountNumberSpaceExhausted 代表在嘗試上限內找不到未使用的帳號。
	ErrAccountNumberSpaceExhausted = errors.New("no unused account number found")
)
