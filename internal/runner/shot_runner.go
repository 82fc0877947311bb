package runner

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/shouni/go-director-kit/pkg/director"
	"github.com/shouni/go-director-kit/pkg/domain"
	"github.com/shouni/go-director-kit/pkg/render"
)

// TurnResult は1ターンぶんの成果なのだ。コンパイルは成功したが描画で
// 失敗した場合、Log だけが埋まった結果とエラーの両方が返るのだ。
type TurnResult struct {
	Log        string // 導演ログ（現在の画風を含む表示用テキスト）
	StyleName  string
	ImageRef   *render.ImageRef
	ImagePath  string // インライン画像を保存した場合のローカルパス
	PromptText string // 生成に使われたポジティブプロンプト
}

// ShotRunner は「指示 → コンパイル → 描画 → 記録」の1ターンを順番に実行するのだ。
// 呼び出しは厳密に逐次で、前のターンが終わるまで次のターンは始まらないのだよ。
type ShotRunner struct {
	director   *director.Director
	gateway    render.Gateway
	transcript *domain.Transcript
	imageDir   string
	seq        int
}

// NewShotRunner は ShotRunner を生成するのだ。
func NewShotRunner(d *director.Director, gw render.Gateway, tr *domain.Transcript, imageDir string) *ShotRunner {
	return &ShotRunner{
		director:   d,
		gateway:    gw,
		transcript: tr,
		imageDir:   imageDir,
	}
}

// Run は1ターンを実行するのだ。失敗はこのターン限りで、トランスクリプトには
// 失敗したステップのアシスタント記録を残さないのだ（中途半端な記録は作らない）。
func (r *ShotRunner) Run(ctx context.Context, instruction string) (*TurnResult, error) {
	// 履歴はユーザーターンを積む前に採取する。最新指示は履歴とは別に渡すのだ。
	history := r.transcript.TextHistory()
	r.transcript.Append(domain.Turn{Role: domain.RoleUser, Kind: domain.KindText, Content: instruction})

	shot, err := r.director.Compile(ctx, instruction, history)
	if err != nil {
		return nil, err
	}

	logText := fmt.Sprintf("%s\n\n[style: %s]", shot.DirectorLog, shot.Meta.StyleState.Name)
	r.transcript.Append(domain.Turn{Role: domain.RoleAssistant, Kind: domain.KindText, Content: logText})

	result := &TurnResult{
		Log:        logText,
		StyleName:  shot.Meta.StyleState.Name,
		PromptText: shot.PromptData.PositivePrompt,
	}

	ref, err := r.gateway.Render(ctx, render.Request{
		PositivePrompt: shot.PromptData.PositivePrompt,
		NegativePrompt: shot.PromptData.NegativePrompt,
		AspectRatio:    shot.PromptData.AspectRatio,
	})
	if err != nil {
		// 導演ログまでは成立しているので、結果とエラーの両方を返すのだ
		return result, err
	}
	result.ImageRef = ref

	content := ref.URL
	if ref.Inline() {
		path, err := r.saveImage(ref)
		if err != nil {
			return result, err
		}
		result.ImagePath = path
		content = path
	}

	r.transcript.Append(domain.Turn{
		Role:       domain.RoleAssistant,
		Kind:       domain.KindImage,
		Content:    content,
		PromptText: shot.PromptData.PositivePrompt,
	})

	slog.Info("ショットが完成したのだ", "style", result.StyleName, "image", content)
	return result, nil
}

// saveImage はインラインのバイト列をシーケンシャルなファイル名で保存するのだ。
func (r *ShotRunner) saveImage(ref *render.ImageRef) (string, error) {
	// MIMEタイプから拡張子を決定（不明なら .png にフォールバックなのだ）
	extension := ".png"
	if exts, err := mime.ExtensionsByType(ref.MimeType); err == nil && len(exts) > 0 {
		extension = exts[0]
	}

	if err := os.MkdirAll(r.imageDir, 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗したのだ: %w", err)
	}

	r.seq++
	path := filepath.Join(r.imageDir, fmt.Sprintf("shot_%04d%s", r.seq, extension))
	if err := os.WriteFile(path, ref.Data, 0644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗したのだ: %w", err)
	}
	return path, nil
}
