package domain

// AspectRatio は本システムが扱う唯一の画角です。
const AspectRatio = "16:9"

// CompiledShot は AI モデルから返されるコンパイル結果全体の構造です。
// ワイヤ形式（JSONキー）はコンパイラ・プロトコルの出力スキーマそのものです。
type CompiledShot struct {
	Meta        ShotMeta   `json:"meta"`
	DirectorLog string     `json:"director_log"`
	PromptData  PromptData `json:"prompt_data"`
}

// ShotMeta はコンパイル時点のメタ情報（応答言語と画風状態）を保持します。
type ShotMeta struct {
	UserLanguage string     `json:"user_language"`
	StyleState   StyleState `json:"style_state"`
}

// StyleState はモデルが認識している現在の画風を保持します。
type StyleState struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PromptData は画像生成エンジンへ渡す最終プロンプト一式です。
type PromptData struct {
	PositivePrompt string `json:"positive_prompt"`
	NegativePrompt string `json:"negative_prompt"`
	AspectRatio    string `json:"aspect_ratio"`
}
