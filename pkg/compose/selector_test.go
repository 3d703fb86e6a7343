package compose

import "testing"

func TestSelectLogo(t *testing.T) {
	t.Run("暗い背景には淡色ロゴが選ばれること", func(t *testing.T) {
		if got := SelectLogo(Dark); got != LogoLight {
			t.Errorf("期待値 %s, 実際の値 %s", LogoLight, got)
		}
	})

	t.Run("明るい背景には濃色ロゴが選ばれること", func(t *testing.T) {
		if got := SelectLogo(Light); got != LogoDark {
			t.Errorf("期待値 %s, 実際の値 %s", LogoDark, got)
		}
	})

	t.Run("medium は light と同じ分岐に合流すること", func(t *testing.T) {
		// 3値の分類に対する2択の意思決定は意図的な仕様であり、
		// 3方向のマッピングに「修正」してはならない
		if got := SelectLogo(Medium); got != LogoDark {
			t.Errorf("期待値 %s, 実際の値 %s", LogoDark, got)
		}
		if SelectLogo(Medium) != SelectLogo(Light) {
			t.Error("medium と light の選択結果が一致しません")
		}
	})
}
