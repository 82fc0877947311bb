package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-director-kit/pkg/render"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-pro-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 60 * time.Second
	DefaultShotLimit   = 10
	DefaultImageDir    = "output/shots"

	// BackendReplicate / BackendGemini は --backend で選べる描画エンジンなのだ。
	BackendReplicate = "replicate"
	BackendGemini    = "gemini"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	ReplicateToken   string
	GeminiModel      string
	GeminiImageModel string
	ReplicateModel   string

	Options SessionOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		ReplicateToken:   envutil.GetEnv("REPLICATE_API_TOKEN", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ReplicateModel:   envutil.GetEnv("REPLICATE_MODEL", render.DefaultReplicateModel),
	}
}

// SessionOptions は CLI フラグから渡される実行時のパラメータなのだ。
type SessionOptions struct {
	// 入出力関連
	ScriptFile     string // --script-file: storyboard コマンドのショット定義JSON
	OutputImageDir string // --output-image-dir

	// AI挙動設定
	AIModel    string // --model: コンパイル用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル
	Backend    string // --backend: replicate か gemini

	// 状態の持ち方
	TrustModelMemory bool // --trust-model-memory: 状態注入をやめ、モデルの記憶に委ねる

	// 実行制御
	ShotLimit   int           // --shot-limit: storyboard で描画する最大ショット数
	HTTPTimeout time.Duration // --http-timeout
}
