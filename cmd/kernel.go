package cmd

import (
	"github.com/shouni/go-director-kit/internal/pipeline"
	"github.com/shouni/go-director-kit/pkg/kernel"

	"github.com/spf13/cobra"
)

// kernelCmd は、コンパイルに使われるシステム指示の全文を標準出力へ書き出すのだ。
// プロンプトの調整やデバッグのとき、モデルが実際に見ている文面を確認できるのだ。
var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "コンパイルに使うシステム指示の全文を出力するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteKernel(cmd.OutOrStdout(), kernel.Build())
	},
}
