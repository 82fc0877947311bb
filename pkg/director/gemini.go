package director

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/go-director-kit/pkg/domain"
)

const defaultTemperature = float32(0.2)

// GeminiClient は GenerativeClient の Gemini 実装です。
// 「忧郁」「悲伤」といった情動語でモデル側の安全フィルタに弾かれないよう、
// 4カテゴリの安全閾値を明示的に緩和して呼び出します。
type GeminiClient struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiClient はクライアントを生成します。apiKey が空でもエラーにはならず、
// Ready が事前条件違反として報告します（UI側で鍵なし警告に変換するためです）。
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	gc := &GeminiClient{apiKey: apiKey, model: model}
	if apiKey == "" {
		return gc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	gc.client = client
	return gc, nil
}

// Ready は APIキーの有無だけを検査します。通信は行いません。
func (g *GeminiClient) Ready() error {
	if g.apiKey == "" || g.client == nil {
		return ErrMissingCredential
	}
	return nil
}

// Generate はカーネルをシステム指示に据え、テキスト履歴を時系列で再生した上で
// 最新指示を送ります。応答が空（ハードな拒否）なら ErrBlocked を返します。
func (g *GeminiClient) Generate(ctx context.Context, system string, history []domain.Message, instruction string) (string, error) {
	if err := g.Ready(); err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(instruction, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		SafetySettings:    relaxedSafetySettings(),
		Temperature:       genai.Ptr(defaultTemperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini呼び出しに失敗しました: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrBlocked
	}
	return text, nil
}

// relaxedSafetySettings は4カテゴリすべての閾値を BLOCK_NONE にします。
func relaxedSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}
