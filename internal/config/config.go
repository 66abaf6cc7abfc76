// internal/config/config.go
//
// 由環境變數讀取設定；未設定時使用預設值。
// 設定值錯誤（例如無法解析的日誌等級）會回傳錯誤，不會默默改用預設值。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultDataFile      = "bank_data.json"
	DefaultAdminPassword = "admin123"
)

// Config 為應用程式執行所需的全部設定。
type Config struct {
	DataFile          string     // 資料檔路徑
	AdminPasswordHash string     // 管理員密碼的 bcrypt 雜湊
	LogLevel          slog.Level // 日誌等級
	BcryptCost        int        // PIN 雜湊成本
}

// Load 讀取環境變數組成 Config。
// 未提供 BANK_ADMIN_PASSWORD_HASH 時，以 BANK_ADMIN_PASSWORD（或預設值）即時雜湊。
func Load() (*Config, error) {
	cfg := &Config{
		DataFile: getEnv("BANK_DATA_FILE", DefaultDataFile),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("BANK_LOG_LEVEL", "warn"))); err != nil {
		return nil, fmt.Errorf("BANK_LOG_LEVEL: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BANK_BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("BANK_BCRYPT_COST: %w", err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BANK_BCRYPT_COST: must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	cfg.BcryptCost = cost

	if h := strings.TrimSpace(os.Getenv("BANK_ADMIN_PASSWORD_HASH")); h != "" {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("BANK_ADMIN_PASSWORD_HASH: %w", err)
		}
		cfg.AdminPasswordHash = h
	} else {
		b, err := bcrypt.GenerateFromPassword([]byte(getEnv("BANK_ADMIN_PASSWORD", DefaultAdminPassword)), cost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = string(b)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
