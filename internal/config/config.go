// Package config は config.json の読み込み・生成・検証を担当します
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"yadoya/internal/page"
)

// ルート不一致時のポリシー名
const (
	NoMatchFallback = "fallback"  // 先頭ページを返す（既定）
	NoMatchNotFound = "not_found" // 404 を返す
)

// DefaultPath は既定の設定ファイルパス
const DefaultPath = "config.json"

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	ThreadCount int               `json:"thread_count" validate:"min=1"`      // ワーカー数
	Verbose     bool              `json:"verbose"`                            // 詳細ログを出力するか
	Port        int               `json:"port" validate:"gte=1024,lte=65534"` // リッスンするポート番号（65535 は不可）
	WebRoot     string            `json:"web_root" validate:"required"`       // ページファイルの基点ディレクトリ
	Pages       []page.Descriptor `json:"pages" validate:"dive"`              // 配信するページの定義（定義順がそのまま優先順）

	// タイムアウト設定（秒、0 で無効）
	ReadTimeout  int `json:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout int `json:"write_timeout"` // 書き込みタイムアウト

	// 接続処理の上限設定
	MaxHeaderBytes int    `json:"max_header_bytes" validate:"min=1"`               // リクエストヘッダの上限バイト数
	QueueSize      int    `json:"queue_size" validate:"min=1"`                     // 接続キューの容量（満杯時は受け付けが待たされる）
	OnNoMatch      string `json:"on_no_match" validate:"oneof=fallback not_found"` // ルート不一致時のポリシー
}

var validate = validator.New()

// Default は既定の設定を返す
func Default() *Config {
	return &Config{
		ThreadCount:    1,
		Verbose:        true,
		Port:           8080,
		WebRoot:        "web",
		Pages:          []page.Descriptor{{Name: "Main Page", Path: "index.html"}},
		ReadTimeout:    10,
		WriteTimeout:   10,
		MaxHeaderBytes: 1024,
		QueueSize:      64,
		OnNoMatch:      NoMatchFallback,
	}
}

// Load は設定ファイルを読み込む
// ファイルが存在しない場合は既定の設定を書き出してから読み込む
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if err := writeDefault(path); err != nil {
			return nil, fmt.Errorf("既定の設定の書き出しに失敗: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}
	return nil
}

// Addr はリッスンアドレスを返す（全インターフェースで待ち受ける）
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// applyDefaults は未指定の上限設定を既定値で埋める
func (c *Config) applyDefaults() {
	if c.MaxHeaderBytes == 0 {
		c.MaxHeaderBytes = 1024
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
	if c.OnNoMatch == "" {
		c.OnNoMatch = NoMatchFallback
	}
}

// applyEnv は環境変数による上書きを反映する
func (c *Config) applyEnv() {
	c.Port = getEnvAsIntOrDefault("YADOYA_PORT", c.Port)
	c.WebRoot = getEnvOrDefault("YADOYA_WEB_ROOT", c.WebRoot)
}

// writeDefault は既定の設定ファイルを書き出す
func writeDefault(path string) error {
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
