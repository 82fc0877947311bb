package runner

import (
	"errors"
	"fmt"

	"github.com/shouni/go-director-kit/pkg/director"
	"github.com/shouni/go-director-kit/pkg/render"
)

// Notice は分類済みの失敗を、対話サーフェスへそのまま出せる文面へ変換するのだ。
// どの失敗もプロセスを落とさず、このターン限りの通知で終わるのだよ。
func Notice(err error) string {
	var malformed *director.MalformedOutputError
	var provider *render.ProviderError
	var transient *director.TransientError

	switch {
	case errors.Is(err, director.ErrMissingCredential):
		return "🔑 GEMINI_API_KEY が設定されていないのだ。鍵を設定するまでコンパイルはお休みなのだ。"

	case errors.Is(err, render.ErrMissingCredential):
		return "⚠️ REPLICATE_API_TOKEN が設定されていないのだ。プロンプトはできたけど、出図はお預けなのだ。"

	case errors.Is(err, director.ErrBlocked):
		return "🎬 導演がモデル側に拦截されたのだ。少し穏やかな指示（「忧郁」「悲伤」などを外す等）で試してほしいのだ。"

	case errors.As(err, &malformed):
		return fmt.Sprintf("🧩 導演ロジックの解析に失敗したのだ。モデルの生の出力はこれなのだ:\n---\n%s\n---", malformed.Raw)

	case errors.Is(err, render.ErrNoOutput):
		return "🖼️ プロバイダが1枚も返してこなかったのだ。もう一度送ってみてほしいのだ。"

	case errors.As(err, &provider):
		return fmt.Sprintf("🎨 绘图に失敗したのだ: %v", err)

	case errors.As(err, &transient):
		return fmt.Sprintf("📡 モデル呼び出しが通らなかったのだ: %v", err)

	default:
		return fmt.Sprintf("❌ このターンは失敗したのだ: %v", err)
	}
}
