// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 檔案最上層為 JSON 物件：key 為帳戶名稱，value 為帳戶紀錄。
// 本層只描述檔案格式，不含任何商業規則（餘額檢查、利息計算皆在 ledger 層）。
package storage

// Record 為單一帳戶在檔案中的序列化格式。
// 欄位名稱即檔案格式的一部分，更動前需考慮既有資料檔的相容性。
type Record struct {
	PIN          string   `json:"pin"`                  // PIN（bcrypt 雜湊；舊檔可能為明文）
	Balance      float64  `json:"balance"`              // 餘額
	History      []string `json:"history"`              // 交易紀錄描述，依發生順序
	Type         string   `json:"type"`                 // "normal" 或 "savings"
	InterestRate float64  `json:"interest_rate"`        // 年利率百分比
	AccountNo    string   `json:"account_no,omitempty"` // 8 位數帳號，僅供顯示
}

// Entry 為「名稱 → 紀錄」的有序配對。
// 以切片而非 map 傳遞，才能保留檔案中 key 的原始順序。
type Entry struct {
	Name   string
	Record Record
}
