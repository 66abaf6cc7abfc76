// internal/ledger/credential.go
//
// PIN 與管理員密碼皆以 bcrypt 雜湊保存，不落地明文。
// 舊版資料檔中的明文 PIN 仍可登入，登入成功後會改存為雜湊（見 Store.Login）。

package ledger

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret 以指定 cost 產生 bcrypt 雜湊。
func HashSecret(secret string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(h), nil
}

// CheckSecret 比對 secret 與已保存的值。
// legacy 為 true 表示保存值不是 bcrypt 雜湊，而是以明文相等比對。
func CheckSecret(stored, secret string) (ok, legacy bool) {
	if _, err := bcrypt.Cost([]byte(stored)); err != nil {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1, true
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil, false
}

// CheckAdminPassword 比對管理員密碼；hash 必須是 bcrypt 雜湊。
func CheckAdminPassword(hash, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrIncorrectAdminPassword
	}
	return nil
}
