// Package director は、自由文の演出指示を言語モデルに「コンパイル」させ、
// スキーマ検証済みの CompiledShot か分類済みの失敗として返します。
// モデルは決定論的なコンパイラとして扱い、会話相手としては扱いません。
package director

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-director-kit/pkg/domain"
	"github.com/shouni/go-director-kit/pkg/kernel"
	"github.com/shouni/go-director-kit/pkg/registry"
)

// GenerativeClient は、カーネル・履歴・最新指示を携えた1回のモデル呼び出しを
// 抽象化します。テストではスタブに差し替えます。
type GenerativeClient interface {
	// Ready は通信を伴わない事前条件検査です。認証情報が無い場合は
	// ErrMissingCredential を返します。
	Ready() error

	// Generate はモデルを1回呼び出し、生の応答テキストを返します。
	// モデルが内容を一切返さなかった場合は ErrBlocked を返します。
	Generate(ctx context.Context, system string, history []domain.Message, instruction string) (string, error)
}

// TrustModel は画風状態の持ち方を選びます。
type TrustModel int

const (
	// TrustProgramState はプログラム側が状態を保持し、毎回明示指示として
	// 再注入します（既定。状態の取りこぼしを構造的に防ぎます）。
	TrustProgramState TrustModel = iota

	// TrustModelMemory は元設計どおり、状態をモデルの暗黙記憶に委ねます。
	TrustModelMemory
)

// State はプログラム側が把握している現在の演出状態です。
// カメラはワイヤスキーマに反映されないため、スタイルのみ応答から更新されます。
type State struct {
	StyleID int
	Camera  registry.CameraTag
}

// Director は1指示ぶんのコンパイルを担います。永続状態は持たず、
// 呼び出し間で保持するのは State だけです。
type Director struct {
	client GenerativeClient
	kernel string
	trust  TrustModel
	state  State
}

// Option は Director の挙動調整です。
type Option func(*Director)

// WithTrustModel は状態の持ち方を切り替えます。
func WithTrustModel(tm TrustModel) Option {
	return func(d *Director) { d.trust = tm }
}

// New は Director を生成します。kernelText には kernel.Build() の結果を渡します。
func New(client GenerativeClient, kernelText string, opts ...Option) *Director {
	d := &Director{
		client: client,
		kernel: kernelText,
		trust:  TrustProgramState,
		state: State{
			StyleID: registry.DefaultStyleID,
			Camera:  registry.DefaultCameraTag,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State は現在把握している演出状態を返します。
func (d *Director) State() State {
	return d.state
}

// Compile は自由文の指示と履歴からコンパイル済みショットを得ます。
// 失敗は ErrMissingCredential / ErrBlocked / *MalformedOutputError /
// *TransientError のいずれかに分類されます。失敗はこのターン限りで、
// リトライやキャッシュは行いません。
func (d *Director) Compile(ctx context.Context, instruction string, history []domain.Message) (*domain.CompiledShot, error) {
	if err := d.client.Ready(); err != nil {
		return nil, err
	}

	turn := instruction
	if d.trust == TrustProgramState {
		// モデルの記憶に頼らず、把握済みの状態を毎ターン明示する
		turn = kernel.StateDirective(d.state.StyleID, d.state.Camera) + "\n" + instruction
	}

	raw, err := d.client.Generate(ctx, d.kernel, history, turn)
	if err != nil {
		if errors.Is(err, ErrBlocked) || errors.Is(err, ErrMissingCredential) {
			return nil, err
		}
		return nil, &TransientError{Err: err}
	}

	shot, err := parseShot(raw)
	if err != nil {
		return nil, err
	}
	if err := d.enforceInvariants(shot, raw); err != nil {
		return nil, err
	}

	// 正常応答からプログラム側の状態を更新する
	d.state.StyleID = shot.Meta.StyleState.ID

	return shot, nil
}

// enforceInvariants はプロトコル不変条件を検査します。
// 描画不能な違反（空のポジティブプロンプト、レジストリ外のスタイルID）は
// 拒否し、ハードネガティブの欠落は警告の上で定数を追記して正規化します。
func (d *Director) enforceInvariants(shot *domain.CompiledShot, raw string) error {
	if strings.TrimSpace(shot.PromptData.PositivePrompt) == "" {
		return &MalformedOutputError{Raw: raw, Err: errors.New("empty positive_prompt")}
	}

	if _, err := registry.Style(shot.Meta.StyleState.ID); err != nil {
		return &MalformedOutputError{Raw: raw, Err: fmt.Errorf("style_state.id out of registry: %w", err)}
	}

	hard := registry.Scene.HardNegative
	if !strings.Contains(shot.PromptData.NegativePrompt, hard) {
		slog.Warn("ネガティブプロンプトにハードネガティブ定数が無いため追記します",
			"style_id", shot.Meta.StyleState.ID)
		if neg := strings.TrimSpace(shot.PromptData.NegativePrompt); neg != "" {
			shot.PromptData.NegativePrompt = neg + ", " + hard
		} else {
			shot.PromptData.NegativePrompt = hard
		}
	}

	if shot.PromptData.AspectRatio != domain.AspectRatio {
		slog.Warn("aspect_ratio を規定値へ戻します",
			"got", shot.PromptData.AspectRatio, "want", domain.AspectRatio)
		shot.PromptData.AspectRatio = domain.AspectRatio
	}

	return nil
}
