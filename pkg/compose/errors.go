package compose

import "errors"

// 合成処理で発生しうるエラー種別の定義です。
// 呼び出し側は errors.Is で種別を判定できます。
var (
	// ErrGeometry はサンプリング領域や配置領域が画像の範囲外であることを示します。
	ErrGeometry = errors.New("compose: 領域が画像の範囲外です")
	// ErrAssetNotFound はロゴアセットのファイルが存在しない、または読み込めないことを示します。
	ErrAssetNotFound = errors.New("compose: ロゴアセットが見つかりません")
	// ErrDecode はバイト列が有効なラスタ画像として解釈できないことを示します。
	ErrDecode = errors.New("compose: 画像のデコードに失敗しました")
)
