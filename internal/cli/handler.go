// internal/cli/handler.go
//
// Package cli
// ─────────────────────────────────────────────
// 提供互動式終端機介面，作為 ledger 模組的應用層 (Application Layer)。
// 每個 handler 僅負責：
//  1. 讀取並解析使用者輸入
//  2. 呼叫 ledger.Store 執行商業邏輯（寫檔由 Store 自行完成）
//  3. 以 say / writeErr 輸出結果
//
// 任何操作失敗都只輸出訊息，選單迴圈繼續執行；只有輸入結束 (EOF) 會讓 handler 回傳錯誤。
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"banking/internal/ledger"
)

// UI 為終端機層核心結構：
// - Store：注入商業邏輯層。
// - in / out：輸入輸出來源，測試時以字串與 buffer 取代 stdin / stdout。
// - adminHash：管理員密碼的 bcrypt 雜湊。
type UI struct {
	Store     *ledger.Store
	in        *bufio.Reader
	out       io.Writer
	adminHash string
	log       *slog.Logger
}

// New 建立新的終端機介面；log 為 nil 時使用 slog.Default()。
func New(store *ledger.Store, in io.Reader, out io.Writer, adminHash string, log *slog.Logger) *UI {
	if log == nil {
		log = slog.Default()
	}
	return &UI{Store: store, in: bufio.NewReader(in), out: out, adminHash: adminHash, log: log}
}

// prompt 輸出提示並讀取一行（去除前後空白）。
// 輸入結束且沒有任何內容時回傳 io.EOF。
func (u *UI) prompt(label string) (string, error) {
	fmt.Fprint(u.out, label)
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// promptAmount 讀取金額；無法解析時輸出 "Invalid amount!" 並回傳 ok=false。
func (u *UI) promptAmount() (amount float64, ok bool, err error) {
	s, err := u.prompt("Amount: ")
	if err != nil {
		return 0, false, err
	}
	amount, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		u.writeErr(ledger.ErrInvalidAmount)
		return 0, false, nil
	}
	return amount, true, nil
}

// createAccount 建立帳戶：名稱、PIN、是否為儲蓄帳戶。
func (u *UI) createAccount() error {
	name, err := u.prompt("Enter Name: ")
	if err != nil {
		return err
	}
	pin, err := u.prompt("Set PIN: ")
	if err != nil {
		return err
	}
	yn, err := u.prompt("Savings Account? (y/n): ")
	if err != nil {
		return err
	}
	t := ledger.Normal
	if strings.EqualFold(yn, "y") {
		t = ledger.Savings
	}

	a, err := u.Store.CreateAccount(name, pin, t)
	if err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Green, "Account created successfully! Account No: %s", a.AccountNo)
	return nil
}

// login 先確認帳戶存在再詢問 PIN，成功後進入帳戶選單。
func (u *UI) login() error {
	name, err := u.prompt("Enter Account Name: ")
	if err != nil {
		return err
	}
	if !u.Store.Exists(name) {
		u.writeErr(ledger.ErrNotFound)
		return nil
	}
	pin, err := u.prompt("Enter PIN: ")
	if err != nil {
		return err
	}
	if _, err := u.Store.Login(name, pin); err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Green, "Login Successful!")
	return u.session(name)
}

func (u *UI) deposit(name string) error {
	amt, ok, err := u.promptAmount()
	if !ok {
		return err
	}
	if _, err := u.Store.Deposit(name, amt); err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Green, "Deposited %s", money(amt))
	return nil
}

func (u *UI) withdraw(name string) error {
	amt, ok, err := u.promptAmount()
	if !ok {
		return err
	}
	if _, err := u.Store.Withdraw(name, amt); err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Yellow, "Withdrew %s", money(amt))
	return nil
}

func (u *UI) viewBalance(name string) error {
	a, err := u.Store.Get(name)
	if err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Blue, "Balance: %s", money(a.Balance))
	return nil
}

func (u *UI) viewHistory(name string) error {
	h, err := u.Store.History(name)
	if err != nil {
		u.writeErr(err)
		return nil
	}
	fmt.Fprintln(u.out)
	u.say(Bold+Cyan, "--- Transaction History ---")
	if len(h) == 0 {
		u.say(Yellow, "No transactions found.")
	}
	for _, line := range h {
		u.say(Blue, "• %s", line)
	}
	fmt.Fprintln(u.out)
	return nil
}

func (u *UI) addInterest(name string) error {
	interest, _, err := u.Store.AddInterest(name)
	if err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Cyan, "Interest added: %s%s", ledger.Currency, ledger.FormatFixed(interest))
	return nil
}

// closeAccount 需輸入 yes 確認；成功後結束帳戶選單。
func (u *UI) closeAccount(name string) error {
	a, err := u.Store.Get(name)
	if err != nil {
		u.writeErr(err)
		return errLeave
	}
	if a.Balance > 0 {
		u.say(Yellow, "Remaining balance %s will be discarded.", money(a.Balance))
	}
	confirm, err := u.prompt(fmt.Sprintf("Type 'yes' to close account %q: ", name))
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		u.say(Yellow, "Close cancelled.")
		return nil
	}
	if err := u.Store.CloseAccount(name); err != nil {
		u.writeErr(err)
		if !u.Store.Exists(name) {
			return errLeave
		}
		return nil
	}
	u.say(Yellow, "Account closed.")
	return errLeave
}

// admin 以管理員密碼進入管理模式。
func (u *UI) admin() error {
	pw, err := u.prompt("Enter Admin Password: ")
	if err != nil {
		return err
	}
	if err := ledger.CheckAdminPassword(u.adminHash, pw); err != nil {
		u.log.Warn("admin login rejected")
		u.writeErr(err)
		return nil
	}
	u.say(Green, "Admin access granted.")
	return u.adminSession()
}

// listAccounts 以表格列出所有帳戶（依建立順序）。
func (u *UI) listAccounts() error {
	all := u.Store.ListAccounts()
	if len(all) == 0 {
		u.say(Yellow, "No accounts found.")
		return nil
	}
	tw := tabwriter.NewWriter(u.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tACCOUNT NO\tTYPE\tBALANCE\tRATE\tTXNS")
	for _, a := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%%\t%d\n",
			a.Name, a.AccountNo, capitalize(string(a.Type)), money(a.Balance), ledger.FormatAmount(a.InterestRate), a.Transactions)
	}
	return tw.Flush()
}

// deleteAccount 依名稱刪除帳戶，不需確認。
func (u *UI) deleteAccount() error {
	name, err := u.prompt("Account name to delete: ")
	if err != nil {
		return err
	}
	if err := u.Store.DeleteAccount(name); err != nil {
		u.writeErr(err)
		return nil
	}
	u.say(Yellow, "Account %q deleted.", name)
	return nil
}
