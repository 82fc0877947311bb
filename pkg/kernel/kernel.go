// Package kernel は、言語モデルを「決定論的なプロンプトコンパイラ」として振る舞わせる
// コンパイラ・プロトコル（VCCカーネル）の文面を組み立てるのだ。
// 固定の散文は埋め込みテンプレート、定数とレジストリは pkg/registry を唯一の
// 情報源として描画するので、レジストリ更新とカーネル文面がずれることはないのだ。
package kernel

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shouni/go-director-kit/pkg/registry"
)

// Version はコンパイラ・プロトコルの版数なのだ。文面を変えたらここを上げるのだよ。
const Version = "5.1"

//go:embed header.md
var headerTemplate string

//go:embed protocol.md
var protocolText string

// Build はモデルへシステム指示として渡すカーネル全文を描画するのだ。
func Build() string {
	var sb strings.Builder

	sb.WriteString(strings.ReplaceAll(headerTemplate, "%VERSION%", Version))
	sb.WriteString("\n")

	// 1. 不変のバイブル（定数群）
	scene := registry.Scene
	sb.WriteString("**1. THE IMMUTABLE BIBLE (CONSTANTS)**\n")
	sb.WriteString("*CRITICAL: Inject these exact strings with specified weights.*\n")
	sb.WriteString(fmt.Sprintf("* **[ACTOR_DEF]:** %q\n", scene.Actor))
	sb.WriteString(fmt.Sprintf("* **[SET_DEF]:** %q\n", scene.Set))
	sb.WriteString(fmt.Sprintf("* **[COLOR_LOGIC]:** %q\n", scene.Color))
	sb.WriteString(fmt.Sprintf("* **[NEG_PROMPT_HARD]:** %q\n", scene.HardNegative))
	sb.WriteString("\n")

	// 2. レジストリ（列挙表）
	sb.WriteString("**2. REGISTRIES (ENUMS)**\n")
	sb.WriteString("**A. STYLE REGISTRY**\n")
	for _, s := range registry.Styles() {
		marker := ""
		if s.ID == registry.DefaultStyleID {
			marker = " (DEFAULT)"
		}
		sb.WriteString(fmt.Sprintf("* **[%d] %s%s:** %q\n", s.ID, s.Name, marker, s.Clause))
	}
	sb.WriteString("**B. CAMERA REGISTRY**\n")
	for _, c := range registry.Cameras() {
		marker := ""
		if c.Tag == registry.DefaultCameraTag {
			marker = " (DEFAULT)"
		}
		sb.WriteString(fmt.Sprintf("* **[%s]%s:** %q\n", c.Tag, marker, c.Clause))
	}
	sb.WriteString("\n")

	sb.WriteString(protocolText)

	return sb.String()
}

// StateDirective は、プログラム側が保持する現在状態をターンごとに明示するための
// 追加指示行を描画するのだ。モデルの暗黙記憶に頼らない動作モードで使うのだよ。
func StateDirective(styleID int, camera registry.CameraTag) string {
	return fmt.Sprintf("[STATE] CURRENT_STYLE_ID=%d CURRENT_CAMERA=%s (authoritative; use unless this turn changes them)", styleID, camera)
}
