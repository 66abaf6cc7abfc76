// internal/cli/cli_test.go
//
// 本檔為 cli 層的整合測試。
// 以字串模擬使用者輸入、以 buffer 收集輸出，驗證選單流程、錯誤訊息與資料檔內容。
// Store 使用 t.TempDir() 下的真實 JSON 檔，確保每次變更後確實寫檔。
package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"banking/internal/ledger"
	"banking/internal/storage"
)

const adminPassword = "s3cret"

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// run 為測試輔助函式：以 script 作為輸入執行一次完整 session，回傳輸出與資料檔路徑。
func run(t *testing.T, path, script string) (string, *ledger.Store) {
	t.Helper()
	store, err := ledger.Open(storage.NewJSONFile(path), ledger.WithBcryptCost(bcrypt.MinCost), ledger.WithLogger(quiet))
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	var out bytes.Buffer
	ui := New(store, strings.NewReader(script), &out, string(hash), quiet)
	require.NoError(t, ui.Run())
	return out.String(), store
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestSessionFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	out, store := run(t, path, lines(
		// 建立儲蓄帳戶，再以重複名稱建立
		"1", "alice", "1234", "y",
		"1", "alice", "9999", "n",
		// 登入後存款、計息、查詢餘額
		"2", "alice", "1234",
		"1", "1000",
		"5",
		"3",
		// 餘額不足、非數字金額
		"2", "5000",
		"1", "abc",
		// 交易紀錄、無效選項、登出、離開
		"4",
		"9",
		"7",
		"4",
	))

	for _, want := range []string{
		"Welcome to the Bank System!",
		"Account created successfully! Account No: ",
		"Account already exists!",
		"Login Successful!",
		"Deposited ₹1000",
		"Interest added: ₹25.00",
		"Balance: ₹1025",
		"Insufficient balance!",
		"Invalid amount!",
		"--- Transaction History ---",
		"• Deposited ₹1000",
		"• Interest added ₹25.00",
		"Invalid Option!",
		"Logged out!",
		"Goodbye!",
	} {
		assert.Contains(t, out, want)
	}

	got, err := store.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, 1025.0, got.Balance)
	assert.Equal(t, ledger.Savings, got.Type)

	// 資料檔已寫入
	entries, err := storage.NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Name)
	assert.Equal(t, 1025.0, entries[0].Record.Balance)
	assert.Equal(t, []string{"Deposited ₹1000", "Interest added ₹25.00"}, entries[0].Record.History)
}

func TestLoginFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	out, _ := run(t, path, lines(
		"1", "bob", "0000", "n",
		// 帳戶不存在，不詢問 PIN
		"2", "ghost",
		"2", "bob", "1111",
		"x",
		"4",
	))
	assert.Contains(t, out, "Account not found!")
	assert.Contains(t, out, "Incorrect PIN!")
	assert.Contains(t, out, "Invalid Option! Try again.")
	assert.NotContains(t, out, "Login Successful!")
	assert.Equal(t, 1, strings.Count(out, "Enter PIN: "))
}

func TestNormalAccountInterestAndWithdraw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	out, store := run(t, path, lines(
		"1", "bob", "0000", "n",
		"2", "bob", "0000",
		// 餘額 0 時提款，再對一般帳戶計息
		"2", "50",
		"5",
		"4",
		"7",
		"4",
	))
	assert.Contains(t, out, "Insufficient balance!")
	assert.Contains(t, out, "Not a savings account!")
	assert.Contains(t, out, "No transactions found.")

	h, err := store.History("bob")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestCloseAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	out, store := run(t, path, lines(
		"1", "carol", "1", "n",
		"2", "carol", "1",
		"1", "20",
		// 先取消，再確認銷戶並回到主選單
		"6", "no",
		"6", "yes",
		"2", "carol",
		"4",
	))
	assert.Contains(t, out, "Remaining balance ₹20 will be discarded.")
	assert.Contains(t, out, "Close cancelled.")
	assert.Contains(t, out, "Account closed.")
	assert.Contains(t, out, "Account not found!")
	assert.False(t, store.Exists("carol"))
}

func TestAdminMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	out, store := run(t, path, lines(
		"1", "zed", "1", "n",
		"1", "amy", "2", "y",
		"3", "wrong",
		"3", adminPassword,
		// 列出、刪除不存在帳戶、刪除 zed、再列出、返回
		"1",
		"2", "nobody",
		"2", "zed",
		"1",
		"3",
		"4",
	))
	assert.Contains(t, out, "Incorrect admin password!")
	assert.Contains(t, out, "Admin access granted.")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Account not found!")
	assert.Contains(t, out, `Account "zed" deleted.`)

	// 第一次列表依建立順序：zed 在 amy 之前
	first := out[strings.Index(out, "NAME"):]
	assert.Less(t, strings.Index(first, "zed"), strings.Index(first, "amy"))
	assert.Contains(t, first, "2.5%")

	assert.False(t, store.Exists("zed"))
	assert.True(t, store.Exists("amy"))
}

func TestEOFEndsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	// PIN 提示時輸入結束
	out, store := run(t, path, lines("1", "dan", "7", "n", "2", "dan"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Goodbye!"+Reset))
	assert.True(t, store.Exists("dan"))

	// 完全沒有輸入
	out, _ = run(t, path, "")
	assert.Contains(t, out, "Goodbye!")
}

func TestStateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")

	run(t, path, lines("1", "erin", "42", "y", "2", "erin", "42", "1", "10.5", "7", "4"))
	out, store := run(t, path, lines("2", "erin", "42", "3", "7", "4"))
	assert.Contains(t, out, "Balance: ₹10.5")

	got, err := store.Get("erin")
	require.NoError(t, err)
	assert.Equal(t, 10.5, got.Balance)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
