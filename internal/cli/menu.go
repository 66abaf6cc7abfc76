// internal/cli/menu.go
//
// 本檔負責選單註冊與分派。
// 與 handler.go 分離：
//   - handler.go 定義「如何處理每個選項」
//   - menu.go 定義「輸入如何被導向」與選單畫面
//
// 選單以 route 切片明確列出（非反射式），選項順序即畫面顯示順序。
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// errLeave 結束目前的子選單（登出、銷戶、離開管理模式）。
var errLeave = errors.New("leave menu")

// route 為一個選單選項。
type route struct {
	key   string
	label string
	fn    func() error
}

// showMenu 輸出選單畫面。
func (u *UI) showMenu(title, color string, header []string, routes []route) {
	bar := strings.Repeat("=", len(title)+22)
	fmt.Fprintf(u.out, "\n%s%s%s %s %s%s\n", Bold, color, strings.Repeat("=", 10), title, strings.Repeat("=", 10), Reset)
	for _, h := range header {
		fmt.Fprintln(u.out, h)
	}
	if len(header) > 0 {
		fmt.Fprintln(u.out)
	}
	for _, r := range routes {
		fmt.Fprintf(u.out, "%s. %s\n", r.key, r.label)
	}
	fmt.Fprintf(u.out, "%s%s%s\n", color, bar, Reset)
}

// dispatch 依輸入執行對應選項；找不到時回傳 false。
func dispatch(routes []route, choice string) (bool, error) {
	for _, r := range routes {
		if r.key == choice {
			return true, r.fn()
		}
	}
	return false, nil
}

// Run 為主選單迴圈；選擇離開或輸入結束 (EOF) 時返回。
func (u *UI) Run() error {
	u.say(Green+Bold, "Welcome to the Bank System!")

	exit := false
	routes := []route{
		{"1", "Create Account", u.createAccount},
		{"2", "Login to Account", u.login},
		{"3", "Admin Mode", u.admin},
		{"4", "Exit", func() error { exit = true; return nil }},
	}

	for !exit {
		u.showMenu("BANK ACCOUNT SYSTEM", Blue, nil, routes)
		choice, err := u.prompt(Cyan + "Enter an option: " + Reset)
		if err != nil {
			return u.finish(err)
		}
		ok, err := dispatch(routes, choice)
		if !ok {
			u.say(Red, "Invalid Option! Try again.")
			continue
		}
		if err != nil {
			return u.finish(err)
		}
	}
	u.say(Yellow, "Goodbye!")
	return nil
}

// finish 將輸入結束視為正常離開。
func (u *UI) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(u.out)
		u.say(Yellow, "Goodbye!")
		return nil
	}
	return err
}

// session 為登入後的帳戶選單迴圈。
func (u *UI) session(name string) error {
	routes := []route{
		{"1", "Deposit", func() error { return u.deposit(name) }},
		{"2", "Withdraw", func() error { return u.withdraw(name) }},
		{"3", "View Balance", func() error { return u.viewBalance(name) }},
		{"4", "View History", func() error { return u.viewHistory(name) }},
		{"5", "Add Interest (Savings Only)", func() error { return u.addInterest(name) }},
		{"6", "Close Account", func() error { return u.closeAccount(name) }},
		{"7", "Logout", func() error { u.say(Yellow, "Logged out!"); return errLeave }},
	}
	return u.loop(routes, Yellow+"Choose an option: "+Reset, func() {
		a, err := u.Store.Get(name)
		if err != nil {
			return
		}
		u.showMenu("ACCOUNT MENU", Cyan, []string{
			"Account: " + Green + a.Name + Reset,
			"Account No: " + a.AccountNo,
			"Type: " + capitalize(string(a.Type)),
			"Balance: " + money(a.Balance),
		}, routes)
	})
}

// adminSession 為管理模式選單迴圈。
func (u *UI) adminSession() error {
	routes := []route{
		{"1", "List All Accounts", u.listAccounts},
		{"2", "Delete Account", u.deleteAccount},
		{"3", "Back", func() error { return errLeave }},
	}
	return u.loop(routes, Yellow+"Choose an option: "+Reset, func() {
		u.showMenu("ADMIN MENU", Red, []string{
			fmt.Sprintf("Accounts: %d", len(u.Store.ListAccounts())),
		}, routes)
	})
}

// loop 為子選單的共用迴圈：errLeave 正常返回，其餘錯誤往上傳。
func (u *UI) loop(routes []route, label string, show func()) error {
	for {
		show()
		choice, err := u.prompt(label)
		if err != nil {
			return err
		}
		ok, err := dispatch(routes, choice)
		if !ok {
			u.say(Red, "Invalid Option!")
			continue
		}
		if errors.Is(err, errLeave) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
