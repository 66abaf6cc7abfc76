// cmd/bank/main.go

// 本程式提供終端機互動式的個人帳戶管理：建立帳戶、登入、存提款、計息、交易紀錄與管理模式。
// 此檔案負責初始化模組（config, ledger, storage, cli），
// 載入資料檔後啟動選單迴圈；每次變更由 ledger 自行寫檔，收到結束訊號時再保存一次。

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"banking/internal/cli"
	"banking/internal/config"
	"banking/internal/ledger"
	"banking/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// 日誌輸出到 stderr，以 session ID 串起同一次執行的所有紀錄
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With(slog.String("session", uuid.NewString()))
	slog.SetDefault(logger)

	// 載入資料檔
	store, err := ledger.Open(storage.NewJSONFile(cfg.DataFile),
		ledger.WithLogger(logger),
		ledger.WithBcryptCost(cfg.BcryptCost),
	)
	if err != nil {
		// 只有已隔離的損毀檔可以安全地以空帳本繼續；其他讀取錯誤繼續執行會在下次寫檔時覆蓋原檔
		if !errors.Is(err, storage.ErrCorrupt) {
			logger.Error("open ledger", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", cfg.DataFile, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "%sWarning: %s could not be parsed and was kept as %s.corrupt-*; starting with an empty ledger.%s\n",
			cli.Yellow, cfg.DataFile, cfg.DataFile, cli.Reset)
	}

	// 背景 goroutine 監聽 SIGINT/SIGTERM，結束前保存狀態
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		if err := store.Save(); err != nil {
			logger.Error("save on exit", slog.String("error", err.Error()))
		}
		fmt.Fprintln(os.Stdout)
		os.Exit(0)
	}()

	ui := cli.New(store, os.Stdin, os.Stdout, cfg.AdminPasswordHash, logger)
	if err := ui.Run(); err != nil {
		logger.Error("session ended", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
