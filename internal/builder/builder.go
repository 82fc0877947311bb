package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-director-kit/internal/config"
	"github.com/shouni/go-director-kit/pkg/director"
	"github.com/shouni/go-director-kit/pkg/domain"
	"github.com/shouni/go-director-kit/pkg/kernel"
	"github.com/shouni/go-director-kit/pkg/render"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持するのだ。
// これを各実行エントリに渡すことで、依存関係の注入を簡素化するのだよ。
type AppContext struct {
	Config     *config.Config        // 環境変数から読み込まれたグローバルな設定
	Options    config.SessionOptions // コマンドラインから渡された実行時の設定
	Director   *director.Director    // 指示をCompiledShotへコンパイルする導演
	Gateway    render.Gateway        // コンパイル済みプロンプトを絵にするゲートウェイ
	Transcript *domain.Transcript    // セッション内だけで生きる会話ログ
}

// NewAppContext は各コンポーネントを組み上げて AppContext を返すのだ。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	d, err := BuildDirector(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gw, err := BuildGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Director:   d,
		Gateway:    gw,
		Transcript: domain.NewTranscript(),
	}, nil
}

// BuildDirector はカーネル文面とGeminiクライアントから Director を構築するのだ。
func BuildDirector(ctx context.Context, cfg *config.Config) (*director.Director, error) {
	client, err := director.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("Directorの構築に失敗したのだ: %w", err)
	}

	var opts []director.Option
	if cfg.Options.TrustModelMemory {
		// 元設計の再現モード: 状態をモデルの暗黙記憶に委ねるのだ
		opts = append(opts, director.WithTrustModel(director.TrustModelMemory))
	}

	return director.New(client, kernel.Build(), opts...), nil
}

// BuildGateway は --backend の指定に応じた描画ゲートウェイを構築するのだ。
func BuildGateway(ctx context.Context, cfg *config.Config) (render.Gateway, error) {
	switch cfg.Options.Backend {
	case config.BackendGemini:
		gw, err := render.InitializeGeminiGateway(ctx, cfg.GeminiAPIKey, cfg.GeminiImageModel, cfg.Options.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("Geminiゲートウェイの構築に失敗したのだ: %w", err)
		}
		return gw, nil

	case config.BackendReplicate, "":
		// トークン未設定でもここでは止めない。描画ターンで鍵なし警告になるのだ。
		return render.NewReplicateGateway(render.ReplicateConfig{
			Token:   cfg.ReplicateToken,
			Model:   cfg.ReplicateModel,
			Timeout: cfg.Options.HTTPTimeout,
		}), nil

	default:
		return nil, fmt.Errorf("未知のバックエンドなのだ: %q（%s か %s を指定してほしいのだ）",
			cfg.Options.Backend, config.BackendReplicate, config.BackendGemini)
	}
}
