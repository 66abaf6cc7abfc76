// internal/ledger/ledger.go

// Package ledger 定義核心商業邏輯：帳戶建立、存款、提款、計息、銷戶、查詢與交易紀錄。
// Store 以單一互斥鎖 (sync.Mutex) 包住每個操作的「讀取 → 變更 → 寫檔」全程，
// 每次變更成功後立即同步寫入後端，沒有批次或延遲寫入。
package ledger

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"banking/internal/storage"
)

// Backend 為持久化後端；storage.JSONFile 為預設實作。
type Backend interface {
	Load() ([]storage.Entry, error)
	Save([]storage.Entry) error
}

// Store 為聚合根 (Aggregate Root)：管理全部帳戶。
// - mu：序列化所有讀寫。
// - order：帳戶名稱的插入順序，ListAccounts 與寫檔皆依此順序。
// - accts：帳戶索引表（名稱 → *Account），內部指標只在臨界區內修改。
type Store struct {
	mu      sync.Mutex
	backend Backend
	order   []string
	accts   map[string]*Account

	intn        func(n int) int
	cost        int
	maxAttempts int
	log         *slog.Logger
}

// Option 調整 Store 的可替換相依。
type Option func(*Store)

// WithLogger 指定日誌輸出。
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIntN 指定帳號產生用的亂數來源，回傳 [0, n) 的整數。
func WithIntN(intn func(n int) int) Option {
	return func(s *Store) { s.intn = intn }
}

// WithBcryptCost 指定 PIN 雜湊成本；測試使用 bcrypt.MinCost。
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// WithMaxAccountNumberAttempts 指定產生帳號時的嘗試上限。
func WithMaxAccountNumberAttempts(n int) Option {
	return func(s *Store) { s.maxAttempts = n }
}

// New 建立空白 Store（尚未載入資料）。
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		accts:       make(map[string]*Account),
		intn:        rand.Intn,
		cost:        bcrypt.DefaultCost,
		maxAttempts: MaxAccountNumberAttempts,
		log:         slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open 建立 Store 並從後端載入資料。
// 載入失敗時仍回傳可用的空 Store 與錯誤，由呼叫端決定要警告後繼續或中止。
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := New(backend, opts...)
	return s, s.Load()
}

// Load 以後端內容取代記憶體狀態。
// 檔案不存在視為空資料；無法讀取或解析時清空並回傳 ErrPersistenceUnavailable。
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.backend.Load()
	if err != nil {
		s.restoreLocked(nil)
		s.log.Warn("load failed, starting with an empty ledger", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	s.restoreLocked(entries)
	s.log.Debug("ledger loaded", slog.Int("accounts", len(s.order)))
	return nil
}

// Save 將全部帳戶寫入後端，覆蓋原有內容。
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := s.backend.Save(s.snapshotLocked()); err != nil {
		s.log.Error("save failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

// Snapshot 依插入順序匯出所有帳戶的儲存層格式。
func (s *Store) Snapshot() []storage.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []storage.Entry {
	out := make([]storage.Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, storage.Entry{Name: name, Record: s.accts[name].toRecord()})
	}
	return out
}

// Restore 由儲存層格式重建帳戶表與順序（不寫檔）。
func (s *Store) Restore(entries []storage.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(entries)
}

func (s *Store) restoreLocked(entries []storage.Entry) {
	s.order = make([]string, 0, len(entries))
	s.accts = make(map[string]*Account, len(entries))
	for _, e := range entries {
		if _, dup := s.accts[e.Name]; !dup {
			s.order = append(s.order, e.Name)
		}
		s.accts[e.Name] = fromRecord(e.Name, e.Record)
	}
}

// Exists 回傳帳戶名稱是否存在。
func (s *Store) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accts[name]
	return ok
}

// ValidatePIN 比對 PIN；帳戶不存在時回傳 ErrNotFound。
// 純查詢，不會升級舊版明文 PIN。
func (s *Store) ValidatePIN(name, pin string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return false, ErrNotFound
	}
	match, _ := CheckSecret(a.PINHash, pin)
	return match, nil
}

// Login 驗證名稱與 PIN，成功時回傳帳戶摘要。
// 若保存的是舊版明文 PIN，比對成功後改存為雜湊並寫檔；寫檔失敗只記錄日誌，不影響登入。
func (s *Store) Login(name, pin string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return Summary{}, ErrNotFound
	}
	match, legacy := CheckSecret(a.PINHash, pin)
	if !match {
		s.log.Info("login rejected", slog.String("account", name))
		return Summary{}, ErrIncorrectPIN
	}
	if legacy {
		if h, err := HashSecret(pin, s.cost); err == nil {
			a.PINHash = h
			if err := s.saveLocked(); err == nil {
				s.log.Info("legacy PIN upgraded", slog.String("account", name))
			}
		}
	}
	return a.summary(), nil
}

// CreateAccount 建立帳戶：餘額 0、空紀錄、依類型決定利率、產生唯一帳號。
// 名稱已存在時回傳 ErrAlreadyExists，既有帳戶不受影響。
func (s *Store) CreateAccount(name, pin string, t AccountType) (Summary, error) {
	if strings.TrimSpace(name) == "" {
		return Summary{}, ErrInvalidName
	}
	if !t.Valid() {
		return Summary{}, fmt.Errorf("%w: %q", ErrInvalidAccountType, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accts[name]; exists {
		return Summary{}, ErrAlreadyExists
	}
	no, err := s.generateLocked()
	if err != nil {
		return Summary{}, err
	}
	h, err := HashSecret(pin, s.cost)
	if err != nil {
		return Summary{}, err
	}

	a := &Account{
		Name:         name,
		PINHash:      h,
		History:      []string{},
		Type:         t,
		InterestRate: t.rate(),
		AccountNo:    no,
	}
	s.accts[name] = a
	s.order = append(s.order, name)
	s.log.Debug("account created", slog.String("account", name), slog.String("type", string(t)), slog.String("account_no", no))
	return a.summary(), s.saveLocked()
}

// Deposit 存款：金額需 > 0，且存入後餘額不得超出 float64 範圍。餘額與紀錄於同一臨界區內更新後寫檔。
func (s *Store) Deposit(name string, amount float64) (Summary, error) {
	if !validAmount(amount) {
		return Summary{}, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return Summary{}, ErrNotFound
	}
	bal, ok := toBalance(dec(a.Balance).Add(dec(amount)))
	if !ok {
		return Summary{}, ErrInvalidAmount
	}
	a.Balance = bal
	a.History = append(a.History, "Deposited "+Currency+FormatAmount(amount))
	s.log.Debug("deposit", slog.String("account", name), slog.Float64("amount", amount))
	return a.summary(), s.saveLocked()
}

// Withdraw 提款：金額需 > 0 且不得超過餘額；失敗時不做任何變更。
func (s *Store) Withdraw(name string, amount float64) (Summary, error) {
	if !validAmount(amount) {
		return Summary{}, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return Summary{}, ErrNotFound
	}
	if dec(amount).GreaterThan(dec(a.Balance)) {
		return Summary{}, ErrInsufficientBalance
	}
	a.Balance = dec(a.Balance).Sub(dec(amount)).InexactFloat64()
	a.History = append(a.History, "Withdrew "+Currency+FormatAmount(amount))
	s.log.Debug("withdraw", slog.String("account", name), slog.Float64("amount", amount))
	return a.summary(), s.saveLocked()
}

// AddInterest 對儲蓄帳戶計息一次：interest = balance * rate / 100，回傳利息金額。
// 一般帳戶回傳 ErrNotSavingsAccount；計息後餘額超出範圍時回傳 ErrInvalidAmount。兩者皆不變更餘額與紀錄。
func (s *Store) AddInterest(name string) (float64, Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return 0, Summary{}, ErrNotFound
	}
	if a.Type != Savings {
		return 0, Summary{}, ErrNotSavingsAccount
	}
	interest := interestOn(a.Balance, a.InterestRate)
	bal, ok := toBalance(dec(a.Balance).Add(interest))
	if !ok {
		return 0, Summary{}, ErrInvalidAmount
	}
	a.Balance = bal
	a.History = append(a.History, "Interest added "+Currency+interest.StringFixed(2))
	s.log.Debug("interest added", slog.String("account", name), slog.String("interest", interest.String()))
	return interest.InexactFloat64(), a.summary(), s.saveLocked()
}

// CloseAccount 為使用者自行銷戶；確認步驟由呼叫端負責。
// 不檢查餘額：非零餘額隨帳戶一併移除。
func (s *Store) CloseAccount(name string) error {
	return s.remove(name, "account closed")
}

// DeleteAccount 為管理員刪除帳戶，無確認步驟。
func (s *Store) DeleteAccount(name string) error {
	return s.remove(name, "account deleted by admin")
}

func (s *Store) remove(name, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return ErrNotFound
	}
	delete(s.accts, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Info(msg, slog.String("account", name), slog.Float64("discarded_balance", a.Balance))
	return s.saveLocked()
}

// Get 回傳帳戶摘要。
func (s *Store) Get(name string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return a.summary(), nil
}

// ListAccounts 依插入順序回傳所有帳戶摘要。
func (s *Store) ListAccounts() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.accts[name].summary())
	}
	return out
}

// History 回傳交易紀錄的拷貝，避免外部修改內部切片。
func (s *Store) History(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]string, len(a.History))
	copy(out, a.History)
	return out, nil
}
