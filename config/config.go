// Package config はアプリケーション設定を管理します。
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/stsysd/kusa/grid"
)

// 環境変数名
const (
	EnvConfigFile   = "KUSA_CONFIG"
	EnvDataDir      = "KUSA_DATA_DIR"
	EnvPort         = "KUSA_SERVER_PORT"
	EnvAPIKey       = "KUSA_API_KEY"
	EnvSourceURL    = "KUSA_SOURCE_URL"
	EnvLocale       = "KUSA_LOCALE"
	EnvLookbackDays = "KUSA_LOOKBACK_DAYS"
	EnvRateLimit    = "KUSA_RATE_LIMIT"
	EnvRateBurst    = "KUSA_RATE_BURST"
	EnvTrustProxy   = "KUSA_TRUST_PROXY"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス
	DataDir string `toml:"data_dir"`

	// HTTPサーバーのポート
	Port string `toml:"port"`

	// API認証キー（serve でのみ必須）
	APIKey string `toml:"api_key"`

	// コントリビューション取得元のURL。空ならローカルのストアを使う
	SourceURL string `toml:"source_url"`

	// ツールチップやラベルのロケール（例: ru_RU, en_US）
	Locale string `toml:"locale"`

	// グリッド開始日までの日数。0はデフォルト
	LookbackDays int `toml:"lookback_days"`

	// グラフ取得のIPごとのレート制限（毎秒）とバースト
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`

	// リバースプロキシの X-Forwarded-For を信頼するか。偽なら接続元アドレスを使う
	TrustProxy bool `toml:"trust_proxy"`

	// レベルごとの色（none..very-high の5色）
	Colors []string `toml:"colors"`
}

// Default はデフォルト値の設定を返します。
func Default() *Config {
	return &Config{
		DataDir:   filepath.Join(".", "data"),
		Port:      "8080",
		Locale:    "ru_RU",
		RateLimit: 5,
		RateBurst: 10,
	}
}

// LoadEnvFile は .env ファイルを環境変数に読み込みます。
// ファイルが存在しない場合は何もしません。
func LoadEnvFile(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}
}

// NewConfig は設定ファイルと環境変数から設定を読み込み、Configインスタンスを生成します。
// 優先順位は 環境変数 > KUSA_CONFIG の TOML ファイル > デフォルト値 です。
func NewConfig() (*Config, error) {
	cfg := Default()

	// 設定ファイルの読み込み
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		c.Port = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.SourceURL = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvLookbackDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLookbackDays, err)
		}
		c.LookbackDays = n
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRateLimit, err)
		}
		c.RateLimit = f
	}
	if v := os.Getenv(EnvTrustProxy); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTrustProxy, err)
		}
		c.TrustProxy = b
	}
	if v := os.Getenv(EnvRateBurst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRateBurst, err)
		}
		c.RateBurst = n
	}
	return nil
}

// Validate は設定値の範囲を検証します。
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("port must be numeric: %q", c.Port))
	}
	if c.LookbackDays != 0 && (c.LookbackDays < grid.MinLookbackDays || c.LookbackDays > grid.MaxLookbackDays) {
		errs = append(errs, fmt.Errorf("lookback_days must be 0 or between %d and %d, got %d",
			grid.MinLookbackDays, grid.MaxLookbackDays, c.LookbackDays))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("rate_limit must be positive"))
	}
	if c.RateBurst < 1 {
		errs = append(errs, errors.New("rate_burst must be at least 1"))
	}
	if len(c.Colors) != 0 && len(c.Colors) != 5 {
		errs = append(errs, fmt.Errorf("colors must list 5 values, got %d", len(c.Colors)))
	}
	return errors.Join(errs...)
}

// RequireAPIKey はサーバー起動に必要なAPIキーの有無を確認します。
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s is not set", EnvAPIKey)
	}
	return nil
}
