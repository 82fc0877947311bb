// Package render は、コンパイル済みプロンプトを外部の画像生成プロバイダへ渡し、
// 画像参照へ正規化して返すゲートウェイを提供します。
package render

import "context"

// Request は1枚ぶんの描画要求です。要求する出力は常に1枚です。
type Request struct {
	PositivePrompt string
	NegativePrompt string
	AspectRatio    string
}

// ImageRef は生成結果への参照です。ホスト型プロバイダは URL を、
// バイト列を直接返すプロバイダは Data と MimeType を埋めます。
type ImageRef struct {
	URL      string
	Data     []byte
	MimeType string
	Provider string
}

// Inline は参照がバイト列（保存が必要）かどうかを返します。
func (r *ImageRef) Inline() bool {
	return r.URL == "" && len(r.Data) > 0
}

// Gateway は画像生成プロバイダ1種へのアダプターです。
// プロバイダが複数枚や遅延シーケンスを返しても、境界で
// 「先頭の1枚を取り、空なら ErrNoOutput」に正規化します。
type Gateway interface {
	Render(ctx context.Context, req Request) (*ImageRef, error)
}
