package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-director-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// storyboardCmd は、ショット定義JSONを読み込んで一括処理するサブコマンドなのだ。
// コンパイルは状態の連続性のため逐次、描画は並列で実行されるのだ。
var storyboardCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "ショット定義JSONから一連のショットを一括で仕上げるのだ。",
	Long: `{"title": "...", "shots": ["镜头1...", "镜头2..."]} 形式のJSONを読み込み、
各指示を順番にコンパイルしてから、画像をまとめて並列描画するのだ。
ショット間の画風やカメラの連続性は、対話セッションと同じルールで保たれるのだよ。`,
	RunE: storyboardCommand,
}

// storyboardCommand は、storyboard サブコマンドの実行ロジック本体なのだ。
func storyboardCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// --script-file がユーザーによって指定されなかった場合、
	// storyboard コマンド固有のデフォルト値を設定する
	if !cmd.Flags().Changed("script-file") {
		opts.ScriptFile = "examples/storyboard.json"
	}

	if opts.ScriptFile == "" {
		return fmt.Errorf("読み込むショット定義JSON（--script-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("ストーリーボードモードを起動するのだ！",
		"input_json", cfg.Options.ScriptFile,
		"backend", cfg.Options.Backend,
		"shot_limit", cfg.Options.ShotLimit)

	return pipeline.ExecuteStoryboard(ctx, cfg)
}
