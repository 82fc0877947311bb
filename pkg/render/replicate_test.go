package render

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*ReplicateGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw := NewReplicateGateway(ReplicateConfig{
		Token:    "test-token",
		Model:    DefaultReplicateModel,
		Timeout:  5 * time.Second,
		Endpoint: srv.URL,
	})
	return gw, srv
}

func TestReplicateGateway_Render(t *testing.T) {
	t.Run("3件のシーケンスから先頭だけを取る", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Prefer"); got != "wait" {
				t.Errorf("Prefer ヘッダが違う: %q", got)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("Authorization ヘッダが違う: %q", got)
			}

			var body struct {
				Input predictionInput `json:"input"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("リクエストボディが読めない: %v", err)
			}
			if body.Input.NumOutputs != 1 {
				t.Errorf("num_outputs は常に1のはず: %d", body.Input.NumOutputs)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"id":     "p1",
				"status": "succeeded",
				"output": []string{"https://img/1.webp", "https://img/2.webp", "https://img/3.webp"},
			})
		})

		ref, err := gw.Render(context.Background(), Request{PositivePrompt: "girl in red hanfu", AspectRatio: "16:9"})
		if err != nil {
			t.Fatalf("予期しない失敗: %v", err)
		}
		if ref.URL != "https://img/1.webp" {
			t.Errorf("先頭以外が返ってきた: %s", ref.URL)
		}
	})

	t.Run("単一文字列の output も受け付ける", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id": "p2", "status": "succeeded", "output": "https://img/only.webp",
			})
		})

		ref, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		if err != nil {
			t.Fatalf("予期しない失敗: %v", err)
		}
		if ref.URL != "https://img/only.webp" {
			t.Errorf("URLが違う: %s", ref.URL)
		}
	})

	t.Run("空シーケンスは NoOutput", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id": "p3", "status": "succeeded", "output": []string{},
			})
		})

		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		if !errors.Is(err, ErrNoOutput) {
			t.Fatalf("ErrNoOutput を期待したが: %v", err)
		}
	})

	t.Run("output が null でも NoOutput", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id": "p4", "status": "succeeded", "output": nil,
			})
		})

		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		if !errors.Is(err, ErrNoOutput) {
			t.Fatalf("ErrNoOutput を期待したが: %v", err)
		}
	})

	t.Run("トークン未設定は通信ゼロで MissingCredential", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer srv.Close()

		gw := NewReplicateGateway(ReplicateConfig{Token: "", Endpoint: srv.URL, Timeout: time.Second})
		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("ErrMissingCredential を期待したが: %v", err)
		}
		if calls != 0 {
			t.Errorf("通信が発生してしまっている: %d 回", calls)
		}
	})

	t.Run("プロバイダ失敗はメッセージ付き ProviderError", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id": "p5", "status": "failed", "error": "NSFW content detected",
			})
		})

		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("ProviderError を期待したが: %v", err)
		}
		if pe.Message != "NSFW content detected" {
			t.Errorf("下層メッセージが失われている: %q", pe.Message)
		}
	})

	t.Run("HTTPエラーは ProviderError", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"invalid token"}`, http.StatusUnauthorized)
		})

		_, err := gw.Render(context.Background(), Request{PositivePrompt: "x", AspectRatio: "16:9"})
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("ProviderError を期待したが: %v", err)
		}
	})
}

func TestFirstOutput_Shapes(t *testing.T) {
	t.Run("配列と単一値は同じURLに正規化される", func(t *testing.T) {
		fromMany, err := firstOutput(json.RawMessage(`["https://img/a.webp"]`))
		if err != nil {
			t.Fatalf("配列形式で失敗: %v", err)
		}
		fromOne, err := firstOutput(json.RawMessage(`"https://img/a.webp"`))
		if err != nil {
			t.Fatalf("単一形式で失敗: %v", err)
		}
		if fromMany != fromOne {
			t.Errorf("正規化結果が一致しない: %s vs %s", fromMany, fromOne)
		}
	})

	t.Run("未知の形は ProviderError", func(t *testing.T) {
		_, err := firstOutput(json.RawMessage(`{"weird": true}`))
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("ProviderError を期待したが: %v", err)
		}
	})
}
