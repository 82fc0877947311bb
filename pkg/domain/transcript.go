package domain

// Role は会話ターンの発話者です。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind はターンの中身の種別です。
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Turn は会話の1単位（ユーザー指示・導演ログ・生成画像のいずれか）です。
// 生成後に書き換えられることはありません。
type Turn struct {
	Role    Role
	Kind    Kind
	Content string

	// PromptText は画像ターンのみが持つ、生成に使われたポジティブプロンプトです。
	PromptText string
}

// Message はモデルへ再生する履歴の1件（テキストターンのみ）です。
type Message struct {
	Role Role
	Text string
}

// Transcript は追記専用・単一書き込み者の会話ログです。
// プロセスをまたいだ永続化は行いません。
type Transcript struct {
	turns []Turn
}

// NewTranscript は空のトランスクリプトを返します。
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append はターンを末尾へ追記します。順序は時系列で、意味を持ちます。
func (t *Transcript) Append(turn Turn) {
	t.turns = append(t.turns, turn)
}

// Turns は全ターンのコピーを時系列順で返します。
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len は記録済みターン数を返します。
func (t *Transcript) Len() int {
	return len(t.turns)
}

// TextHistory はモデルの文脈として再生するテキストターンだけを返します。
// 画像ターンは表示専用であり、トークン増加とバイナリ参照の混入を避けるため
// 履歴には決して含めません。
func (t *Transcript) TextHistory() []Message {
	var msgs []Message
	for _, turn := range t.turns {
		if turn.Kind != KindText {
			continue
		}
		msgs = append(msgs, Message{Role: turn.Role, Text: turn.Content})
	}
	return msgs
}

// Clear は「履歴クリア」操作に対応し、全ターンを一括で破棄します。
func (t *Transcript) Clear() {
	t.turns = nil
}
