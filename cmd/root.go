package cmd

import (
	"context"
	"os"

	"github.com/shouni/go-director-kit/internal/config"

	"github.com/spf13/cobra"
)

// opts は各サブコマンドが共有する実行時パラメータなのだ。
var opts config.SessionOptions

// rootCmd はアプリケーションのトップレベルコマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "go-director-kit",
	Short: "自由な演出指示を構造化プロンプトへコンパイルして絵にする視覚導演CLIなのだ。",
	Long: `go-director-kit は、会話の中の演出指示（「镜头1，她在雨中哭泣」など）を
固定レジストリとシーンバイブルに基づく構造化プロンプトへコンパイルし、
画像生成プロバイダへ橋渡しする対話型の視覚導演なのだ。`,
	SilenceUsage: true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "storyboard コマンドが読み込むショット定義JSONのパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputImageDir, "output-image-dir", "i", config.DefaultImageDir, "インライン画像を保存するディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "コンパイルに使う Gemini モデル名なのだ（未指定なら GEMINI_MODEL）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使う Gemini モデル名なのだ（未指定なら IMAGE_GEMINI_MODEL）。")
	rootCmd.PersistentFlags().StringVarP(&opts.Backend, "backend", "b", config.BackendReplicate, "描画バックエンドなのだ（replicate か gemini）。")
	rootCmd.PersistentFlags().BoolVar(&opts.TrustModelMemory, "trust-model-memory", false, "状態注入をやめて、画風とカメラの記憶をモデルに委ねるのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "プロバイダへのリクエストのタイムアウトなのだ。")

	// --- バッチ実行の制御 ---
	rootCmd.PersistentFlags().IntVarP(&opts.ShotLimit, "shot-limit", "p", config.DefaultShotLimit, "storyboard で描画する最大ショット数なのだ。")
}

// loadConfig は環境変数とフラグの両方を反映した設定を返すのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(chatCmd, shotCmd, storyboardCmd, kernelCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
