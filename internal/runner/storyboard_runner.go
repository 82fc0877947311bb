package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-director-kit/pkg/director"
	"github.com/shouni/go-director-kit/pkg/domain"
	"github.com/shouni/go-director-kit/pkg/render"
)

// Storyboard は storyboard コマンドが読み込むショット定義なのだ。
type Storyboard struct {
	Title string   `json:"title"`
	Shots []string `json:"shots"`
}

// CompiledEntry は1ショットぶんのコンパイル結果と描画結果なのだ。
type CompiledEntry struct {
	Instruction string
	Shot        *domain.CompiledShot
	ImageRef    *render.ImageRef
}

// StoryboardRunner は、ショット一覧を一括処理するバッチ実行体なのだ。
// コンパイルは状態の連続性を保つため逐次、描画は互いに独立なので並列なのだ。
type StoryboardRunner struct {
	director *director.Director
	gateway  render.Gateway
	limit    int
}

// NewStoryboardRunner は StoryboardRunner を生成するのだ。
func NewStoryboardRunner(d *director.Director, gw render.Gateway, limit int) *StoryboardRunner {
	return &StoryboardRunner{director: d, gateway: gw, limit: limit}
}

// LoadStoryboard はショット定義JSONを読み込むのだ。
func LoadStoryboard(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ショット定義 '%s' の読み込みに失敗したのだ: %w", path, err)
	}

	var sb Storyboard
	if err := json.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("ショット定義 '%s' のデコードに失敗したのだ: %w", path, err)
	}
	if len(sb.Shots) == 0 {
		return nil, fmt.Errorf("ショット定義 '%s' に shots が1件も無いのだ", path)
	}
	return &sb, nil
}

// Run は全ショットをコンパイルしてから描画するのだ。
func (r *StoryboardRunner) Run(ctx context.Context, board *Storyboard) ([]CompiledEntry, error) {
	shots := board.Shots
	// 指定があれば、描画するショット数を制限するのだ（テスト用などに便利！）
	if r.limit > 0 && len(shots) > r.limit {
		slog.Info("ショット数に制限を適用したのだ", "limit", r.limit, "total", len(shots))
		shots = shots[:r.limit]
	}

	// --- Phase 1: 逐次コンパイル（履歴と状態を引き継ぐのだ） ---
	entries := make([]CompiledEntry, len(shots))
	var history []domain.Message
	for i, instruction := range shots {
		shot, err := r.director.Compile(ctx, instruction, history)
		if err != nil {
			return nil, fmt.Errorf("ショット %d のコンパイルに失敗したのだ: %w", i+1, err)
		}
		entries[i] = CompiledEntry{Instruction: instruction, Shot: shot}

		history = append(history,
			domain.Message{Role: domain.RoleUser, Text: instruction},
			domain.Message{Role: domain.RoleAssistant, Text: shot.DirectorLog},
		)
		slog.Info("ショットをコンパイルしたのだ", "shot", i+1, "style", shot.Meta.StyleState.Name)
	}

	// --- Phase 2: 並列描画（流量はゲートウェイ側のリミッターが抑えるのだ） ---
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range entries {
		i := i
		eg.Go(func() error {
			shot := entries[i].Shot
			ref, err := r.gateway.Render(egCtx, render.Request{
				PositivePrompt: shot.PromptData.PositivePrompt,
				NegativePrompt: shot.PromptData.NegativePrompt,
				AspectRatio:    shot.PromptData.AspectRatio,
			})
			if err != nil {
				slog.Error("ショットの描画に失敗したのだ", "shot", i+1, "error", err)
				return err
			}
			entries[i].ImageRef = ref
			slog.Info("ショットを描画したのだ", "shot", i+1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("ストーリーボードが完成したのだ", "title", board.Title, "shots", len(entries))
	return entries, nil
}
