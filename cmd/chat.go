package cmd

import (
	"log/slog"

	"github.com/shouni/go-director-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// chatCmd は、標準入力から演出指示を受け付ける対話セッションを開始するサブコマンドなのだ。
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "対話セッションを開始して、1行ごとに1ショットを仕上げるのだ。",
	Long: `標準入力の1行を1つの演出指示として受け取り、コンパイルと描画を順番に実行するのだ。
コンパイルや描画に失敗してもセッションは落ちず、そのターン限りの通知が出るのだ。
:clear で会話ログをリセット、:quit（または Ctrl+D）で終了なのだよ。`,
	RunE: chatCommand,
}

// chatCommand は、chat サブコマンドの実行ロジック本体なのだ。
func chatCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("対話モードを起動するのだ！",
		"backend", cfg.Options.Backend,
		"model", cfg.GeminiModel,
		"image_dir", cfg.Options.OutputImageDir)

	return pipeline.ExecuteChat(ctx, cfg)
}
