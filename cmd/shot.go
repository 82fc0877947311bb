package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-director-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// shotCmd は、演出指示を1つだけ処理するワンショット実行のサブコマンドなのだ。
// スクリプトやパイプから呼びやすい、chat の非対話版なのだ。
var shotCmd = &cobra.Command{
	Use:   "shot [instruction]",
	Short: "演出指示を1つだけコンパイルして描画するのだ。",
	Args:  cobra.MinimumNArgs(1),
	RunE:  shotCommand,
}

// shotCommand は、shot サブコマンドの実行ロジック本体なのだ。
func shotCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	instruction := strings.TrimSpace(strings.Join(args, " "))
	if instruction == "" {
		return fmt.Errorf("演出指示が空なのだ。何を撮るか教えてほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("ワンショットモードを起動するのだ！",
		"backend", cfg.Options.Backend,
		"model", cfg.GeminiModel)

	return pipeline.ExecuteShot(ctx, cfg, instruction)
}
