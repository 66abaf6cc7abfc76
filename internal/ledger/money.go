// internal/ledger/money.go
//
// 金額運算與格式化。
// 計算一律以 decimal 進行，只在寫回餘額時轉成 float64。
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Currency 為交易紀錄中金額的前綴符號。
const Currency = "₹"

func validAmount(amount float64) bool {
	return finite(amount) && amount > 0
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// toBalance 將運算結果轉回 float64；超出 float64 範圍時回傳 false。
func toBalance(d decimal.Decimal) (float64, bool) {
	f := d.InexactFloat64()
	return f, finite(f)
}

// interestOn = balance * rate / 100
func interestOn(balance, rate float64) decimal.Decimal {
	return dec(balance).Mul(dec(rate)).Div(decimal.NewFromInt(100))
}

// FormatAmount 以最短的十進位形式輸出：1000、12.5。
func FormatAmount(amount float64) string {
	return dec(amount).String()
}

// FormatFixed 固定輸出兩位小數。
func FormatFixed(amount float64) string {
	return dec(amount).StringFixed(2)
}
