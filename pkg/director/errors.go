package director

import (
	"errors"
	"fmt"
)

// ErrMissingCredential は、モデル用APIキーが未設定のまま Compile が呼ばれたときに
// 返されます。通信は一切行われません。
var ErrMissingCredential = errors.New("director: missing model api key")

// ErrBlocked は、モデルが内容を一切返さなかった（ハードな拒否）ことを示します。
// 指示を和らげて再送する以外の自動リトライは行いません。
var ErrBlocked = errors.New("director: model declined to produce content")

// MalformedOutputError は、モデル出力がフェンス除去・JSONパース・スキーマ検証の
// いずれかで弾かれたことを示します。Raw には手元で原因を調べられるよう、
// 加工前のモデル出力がそのまま入ります。
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("director: malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// TransientError は、モデル呼び出し自体がネットワーク等の要因で失敗したことを
// 示します。ターンを打ち切り、手動での再送に委ねます。
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("director: model call failed: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
