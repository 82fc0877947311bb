package render

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	imgdom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
	defaultCacheTTL        = 1 * time.Hour
	imageTemperature       = float32(0.2)
)

// PanelGenerator は gemini-image-kit のジェネレーターが満たす最小の契約です。
type PanelGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imgdom.ImageGenerationRequest) (*imgdom.ImageResponse, error)
}

// GeminiGateway は Gemini の画像生成キットをバックエンドにする Gateway 実装です。
// URL ではなくバイト列を返すプロバイダ側の形を、境界で ImageRef へ正規化します。
type GeminiGateway struct {
	gen     PanelGenerator
	limiter *rate.Limiter
}

// NewGeminiGateway は構築済みのジェネレーターからゲートウェイを生成します。
func NewGeminiGateway(gen PanelGenerator) *GeminiGateway {
	return &GeminiGateway{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Every(defaultRenderInterval), 1),
	}
}

// InitializeGeminiGateway は画像コアとAIクライアントを組み上げ、ゲートウェイを返します。
func InitializeGeminiGateway(ctx context.Context, apiKey, imageModel string, timeout time.Duration) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	httpClient := httpkit.New(timeout)
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)

	core, err := imagekit.NewGeminiImageCore(httpClient, imgCache, defaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	aiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(imageTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(core, aiClient, imageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return NewGeminiGateway(imgGen), nil
}

// Render は1枚ぶんの生成を依頼し、得られたバイト列を ImageRef として返します。
func (g *GeminiGateway) Render(ctx context.Context, req Request) (*ImageRef, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}

	resp, err := g.gen.GenerateMangaPanel(ctx, imgdom.ImageGenerationRequest{
		Prompt:         req.PositivePrompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, ErrNoOutput
	}

	return &ImageRef{
		Data:     resp.Data,
		MimeType: resp.MimeType,
		Provider: "gemini",
	}, nil
}
