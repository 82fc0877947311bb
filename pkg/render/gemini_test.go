package render

import (
	"context"
	"errors"
	"testing"

	imgdom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// stubPanelGenerator は PanelGenerator の記録付きスタブです。
type stubPanelGenerator struct {
	resp *imgdom.ImageResponse
	err  error

	calls  int
	gotReq imgdom.ImageGenerationRequest
}

func (s *stubPanelGenerator) GenerateMangaPanel(_ context.Context, req imgdom.ImageGenerationRequest) (*imgdom.ImageResponse, error) {
	s.calls++
	s.gotReq = req
	return s.resp, s.err
}

func TestGeminiGateway_Render(t *testing.T) {
	t.Run("バイト列は ImageRef に正規化される", func(t *testing.T) {
		stub := &stubPanelGenerator{
			resp: &imgdom.ImageResponse{Data: []byte{0x89, 0x50}, MimeType: "image/png"},
		}
		gw := NewGeminiGateway(stub)

		ref, err := gw.Render(context.Background(), Request{
			PositivePrompt: "girl in red hanfu",
			NegativePrompt: "(text:2.0)",
			AspectRatio:    "16:9",
		})
		if err != nil {
			t.Fatalf("予期しない失敗: %v", err)
		}
		if !ref.Inline() {
			t.Error("インライン参照になっていない")
		}
		if ref.MimeType != "image/png" {
			t.Errorf("MIMEタイプが違う: %s", ref.MimeType)
		}
		if stub.gotReq.AspectRatio != "16:9" || stub.gotReq.NegativePrompt == "" {
			t.Errorf("要求が正しく渡っていない: %+v", stub.gotReq)
		}
	})

	t.Run("空データは NoOutput", func(t *testing.T) {
		gw := NewGeminiGateway(&stubPanelGenerator{resp: &imgdom.ImageResponse{}})
		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		if !errors.Is(err, ErrNoOutput) {
			t.Fatalf("ErrNoOutput を期待したが: %v", err)
		}
	})

	t.Run("生成失敗は ProviderError", func(t *testing.T) {
		gw := NewGeminiGateway(&stubPanelGenerator{err: errors.New("quota exceeded")})
		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("ProviderError を期待したが: %v", err)
		}
	})
}
