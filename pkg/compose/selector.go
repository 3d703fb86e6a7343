package compose

// ロゴアセットの論理名です。アセットディレクトリ内のファイル名（拡張子なし）に対応します。
const (
	LogoDark  = "dark_logo"  // 明るい背景向けの濃色ロゴ
	LogoLight = "light_logo" // 暗い背景向けの淡色ロゴ
)

// SelectLogo は輝度分類からロゴアセットの論理名を決定します。
// dark な背景にのみ light_logo を選び、medium と light はどちらも dark_logo に合流します。
// 3値の分類に対して2択の意思決定であることは意図的な仕様です。
func SelectLogo(c Classification) string {
	if c == Dark {
		return LogoLight
	}
	return LogoDark
}
