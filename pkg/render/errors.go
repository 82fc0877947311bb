package render

import (
	"errors"
	"fmt"
)

// ErrMissingCredential は、プロバイダ用トークンが未設定のまま描画しようとした
// ことを示します。ネットワーク呼び出しの前に検査されます。
var ErrMissingCredential = errors.New("render: missing provider credential")

// ErrNoOutput は、プロバイダが空の結果集合を返したことを示します。
var ErrNoOutput = errors.New("render: provider returned no output")

// ProviderError は、プロバイダ側またはネットワークの失敗です。
// 自動リトライはせず、下層のメッセージをそのまま利用者へ見せます。
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("render: %s provider failure: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("render: %s provider failure: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
