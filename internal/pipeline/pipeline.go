package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-director-kit/internal/builder"
	"github.com/shouni/go-director-kit/internal/config"
	"github.com/shouni/go-director-kit/internal/runner"
)

// ExecuteChat は対話セッションを開始するのだ。1行が1ターンで、
// 「指示 → コンパイル → 描画 → 記録」を失敗してもセッションを保ったまま回し続けるのだ。
func ExecuteChat(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	warnMissingKeys(cfg)

	shotRunner := runner.NewShotRunner(appCtx.Director, appCtx.Gateway, appCtx.Transcript, cfg.Options.OutputImageDir)

	fmt.Println("🎬 視覚導演セッションを開始するのだ。演出指示をどうぞ（:clear でリセット / :quit で終了）")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break // EOF（Ctrl+D）で終了なのだ
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":exit":
			fmt.Println("🎬 セッションを終了するのだ。お疲れさまなのだ！")
			return scanner.Err()
		case ":clear":
			appCtx.Transcript.Clear()
			fmt.Println("🧹 会話ログをリセットしたのだ。新しいプロジェクトとして続けられるのだ。")
			continue
		}

		result, err := shotRunner.Run(ctx, line)
		if result != nil && result.Log != "" {
			fmt.Println(result.Log)
		}
		if err != nil {
			// 失敗はこのターン限り。通知を出してセッションは続けるのだ
			fmt.Println(runner.Notice(err))
			continue
		}

		if result.ImagePath != "" {
			fmt.Printf("🖼️ %s\n", result.ImagePath)
		} else if result.ImageRef != nil && result.ImageRef.URL != "" {
			fmt.Printf("🖼️ %s\n", result.ImageRef.URL)
		}
	}
	return scanner.Err()
}

// ExecuteShot は1つの演出指示を単発で処理するワンショット実行なのだ。
func ExecuteShot(ctx context.Context, cfg *config.Config, instruction string) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	shotRunner := runner.NewShotRunner(appCtx.Director, appCtx.Gateway, appCtx.Transcript, cfg.Options.OutputImageDir)

	result, err := shotRunner.Run(ctx, instruction)
	if result != nil && result.Log != "" {
		fmt.Println(result.Log)
	}
	if err != nil {
		fmt.Println(runner.Notice(err))
		return err
	}

	if result.ImagePath != "" {
		fmt.Printf("🖼️ %s\n", result.ImagePath)
	} else if result.ImageRef != nil && result.ImageRef.URL != "" {
		fmt.Printf("🖼️ %s\n", result.ImageRef.URL)
	}
	return nil
}

// ExecuteStoryboard は、指定されたJSONファイル（ショット定義）を読み込み、
// 逐次コンパイルと並列描画を実行するバッチモードなのだ。
func ExecuteStoryboard(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	board, err := runner.LoadStoryboard(cfg.Options.ScriptFile)
	if err != nil {
		return err
	}

	sbRunner := runner.NewStoryboardRunner(appCtx.Director, appCtx.Gateway, cfg.Options.ShotLimit)
	entries, err := sbRunner.Run(ctx, board)
	if err != nil {
		return err
	}

	// 成果物の保存と一覧表示なのだ
	for i, entry := range entries {
		location, err := resolveImageLocation(cfg.Options.OutputImageDir, i+1, entry)
		if err != nil {
			return err
		}
		fmt.Printf("[%d] %s\n    %s\n", i+1, entry.Instruction, location)
	}

	slog.Info("ストーリーボードの処理が完了したのだ！", "shots", len(entries))
	return nil
}

// ExecuteKernel はコンパイルに使うシステム指示の全文を書き出すのだ。
// 出力先が "-" か空なら標準出力に出すのだよ。
func ExecuteKernel(w io.Writer, kernelText string) error {
	if _, err := io.WriteString(w, kernelText); err != nil {
		return fmt.Errorf("カーネル文面の書き出しに失敗したのだ: %w", err)
	}
	return nil
}

// setupAppContext は、提供された設定から共有コンポーネントを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	// CLIフラグのモデル指定は環境変数より優先なのだ
	if cfg.Options.AIModel != "" {
		cfg.GeminiModel = cfg.Options.AIModel
	}
	if cfg.Options.ImageModel != "" {
		cfg.GeminiImageModel = cfg.Options.ImageModel
	}

	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションコンテキストの初期化に失敗したのだ: %w", err)
	}
	return appCtx, nil
}

// warnMissingKeys は、セッション開始時点で足りない鍵を前もって知らせるのだ。
// 鍵が無くても起動は止めない。該当するターンで通知が出る設計なのだ。
func warnMissingKeys(cfg *config.Config) {
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY が未設定なのだ。コンパイルのターンは鍵なし通知になるのだ")
	}
	if cfg.Options.Backend != config.BackendGemini && cfg.ReplicateToken == "" {
		slog.Warn("REPLICATE_API_TOKEN が未設定なのだ。描画のターンは鍵なし通知になるのだ")
	}
}

// resolveImageLocation はエントリの画像を表示可能な場所（URLか保存先パス）に解決するのだ。
func resolveImageLocation(dir string, seq int, entry runner.CompiledEntry) (string, error) {
	ref := entry.ImageRef
	if ref == nil {
		return "(no image)", nil
	}
	if !ref.Inline() {
		return ref.URL, nil
	}

	extension := ".png"
	if exts, err := mime.ExtensionsByType(ref.MimeType); err == nil && len(exts) > 0 {
		extension = exts[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗したのだ: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("shot_%04d%s", seq, extension))
	if err := os.WriteFile(path, ref.Data, 0644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗したのだ: %w", err)
	}
	return path, nil
}
