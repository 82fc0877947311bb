package director

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shouni/go-director-kit/pkg/domain"
)

var errEmptyOutput = errors.New("empty response text")

// stripFences は、モデルが付けがちな Markdown のラッパートークン
// （```json と ```）だけを取り除きます。トークンの除去は全出現に対して行い、
// それ以外の文字列には手を加えません。
func stripFences(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseShot は、モデルの生テキストを単一のJSONオブジェクトとしてパースします。
// 失敗した場合は、呼び出し側が診断できるよう生テキストを無加工のまま抱えた
// MalformedOutputError を返します。
func parseShot(raw string) (*domain.CompiledShot, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, &MalformedOutputError{Raw: raw, Err: errEmptyOutput}
	}

	var shot domain.CompiledShot
	if err := json.Unmarshal([]byte(cleaned), &shot); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}
	return &shot, nil
}
