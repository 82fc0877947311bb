package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultReplicateModel は既定のレンダリングエンジンです。
	DefaultReplicateModel = "black-forest-labs/flux-schnell"

	defaultReplicateEndpoint = "https://api.replicate.com"
	defaultRenderInterval    = 3 * time.Second
)

// ReplicateConfig は Replicate ゲートウェイの設定です。
type ReplicateConfig struct {
	Token   string
	Model   string // "owner/name" 形式
	Timeout time.Duration

	// Endpoint は API ベースURLです。空なら本番エンドポイントを使います。
	Endpoint string
}

// ReplicateGateway は Replicate の同期（Prefer: wait）予測APIを叩く Gateway 実装です。
type ReplicateGateway struct {
	token      string
	model      string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewReplicateGateway はゲートウェイを生成します。トークンが空でもエラーには
// ならず、Render が事前条件違反として報告します。
func NewReplicateGateway(cfg ReplicateConfig) *ReplicateGateway {
	model := cfg.Model
	if model == "" {
		model = DefaultReplicateModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultReplicateEndpoint
	}

	return &ReplicateGateway{
		token:    cfg.Token,
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(defaultRenderInterval), 1),
	}
}

// predictionInput は予測APIの input ペイロードです。
type predictionInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	AspectRatio    string `json:"aspect_ratio"`
	NumOutputs     int    `json:"num_outputs"`
}

// prediction は予測APIの応答です。output はプロバイダ/版によって
// 単一文字列にも文字列配列にもなるため、生のまま受けて後段で判別します。
type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Render は1枚の画像URLを返します。トークン未設定は通信前に
// ErrMissingCredential、空出力は ErrNoOutput、その他は ProviderError です。
func (g *ReplicateGateway) Render(ctx context.Context, req Request) (*ImageRef, error) {
	if g.token == "" {
		return nil, ErrMissingCredential
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}

	body, err := json.Marshal(map[string]predictionInput{
		"input": {
			Prompt:         req.PositivePrompt,
			NegativePrompt: req.NegativePrompt,
			AspectRatio:    req.AspectRatio,
			NumOutputs:     1,
		},
	})
	if err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}

	url := fmt.Sprintf("%s/v1/models/%s/predictions", g.endpoint, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.token)
	httpReq.Header.Set("Content-Type", "application/json")
	// 同期モード: 生成完了までレスポンスを保留させる
	httpReq.Header.Set("Prefer", "wait")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ProviderError{
			Provider: "replicate",
			Message:  fmt.Sprintf("status %d: %s", resp.StatusCode, bytes.TrimSpace(payload)),
		}
	}

	var pred prediction
	if err := json.Unmarshal(payload, &pred); err != nil {
		return nil, &ProviderError{Provider: "replicate", Err: err}
	}
	if pred.Error != "" {
		return nil, &ProviderError{Provider: "replicate", Message: pred.Error}
	}
	if pred.Status == "failed" || pred.Status == "canceled" {
		return nil, &ProviderError{Provider: "replicate", Message: "prediction " + pred.Status}
	}

	first, err := firstOutput(pred.Output)
	if err != nil {
		return nil, err
	}
	return &ImageRef{URL: first, Provider: "replicate"}, nil
}

// firstOutput は多態な output（単一文字列 or 文字列シーケンス）を
// 「先頭の1件、空なら ErrNoOutput」へ正規化します。
func firstOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrNoOutput
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		if len(many) == 0 {
			return "", ErrNoOutput
		}
		return many[0], nil
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return "", ErrNoOutput
		}
		return one, nil
	}

	return "", &ProviderError{
		Provider: "replicate",
		Message:  fmt.Sprintf("unexpected output shape: %.80s", raw),
	}
}
