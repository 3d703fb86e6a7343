package compose

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
)

// writeTestLogos はテンポラリディレクトリに検証用のロゴ一式を書き出します。
// light_logo: 白 400x200 (2:1) / dark_logo: 赤 400x200 / medium_logo: 参照用 400x100
func writeTestLogos(t *testing.T) *asset.Store {
	t.Helper()
	dir := t.TempDir()

	logos := map[string]color.NRGBA{
		"light_logo":  {255, 255, 255, 255},
		"dark_logo":   {200, 0, 0, 255},
		"medium_logo": {128, 128, 128, 255},
	}
	sizes := map[string][2]int{
		"light_logo":  {400, 200},
		"dark_logo":   {400, 200},
		"medium_logo": {400, 100},
	}

	for name, c := range logos {
		img := imaging.New(sizes[name][0], sizes[name][1], c)
		if err := imaging.Save(img, filepath.Join(dir, name+".png")); err != nil {
			t.Fatalf("テスト用ロゴの書き出しに失敗しました: %v", err)
		}
	}
	return asset.NewStore(dir)
}

func pixelsEqual(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestCompositorApply(t *testing.T) {
	store := writeTestLogos(t)

	t.Run("暗い背景では淡色ロゴが中央上部に合成されること", func(t *testing.T) {
		bg := imaging.New(1000, 600, color.NRGBA{0, 0, 0, 255})
		comp := New(store, ModePlain)

		out, res := comp.Apply(bg)
		if !res.Applied {
			t.Fatalf("合成が行われませんでした: %v", res.Err)
		}
		if res.Classification != Dark {
			t.Errorf("分類の期待値 dark, 実際の値 %s", res.Classification)
		}
		if res.Asset != LogoLight {
			t.Errorf("アセットの期待値 %s, 実際の値 %s", LogoLight, res.Asset)
		}

		// 2:1 のロゴは幅 500 高さ 250 に拡縮され、x=250, y=20 に配置される
		checkWhite := func(x, y int) {
			r, g, b, _ := out.At(x, y).RGBA()
			if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
				t.Errorf("(%d,%d) にロゴの白が見つかりません: r=%d g=%d b=%d", x, y, r>>8, g>>8, b>>8)
			}
		}
		checkBlack := func(x, y int) {
			r, g, b, _ := out.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				t.Errorf("(%d,%d) は背景のままであるべきです", x, y)
			}
		}

		checkWhite(500, 100) // ロゴ中心部
		checkWhite(260, 100) // 左端の内側
		checkWhite(500, 265) // 下端の内側
		checkBlack(240, 100) // 左端の外側（±1px の丸めを許容して離す）
		checkBlack(500, 15)  // 上端マージンの外側
		checkBlack(500, 280) // 下端の外側
		checkBlack(10, 500)  // ロゴと無関係な領域
	})

	t.Run("明るい背景では濃色ロゴが選ばれること", func(t *testing.T) {
		bg := imaging.New(1000, 600, color.NRGBA{255, 255, 255, 255})
		comp := New(store, ModePlain)

		out, res := comp.Apply(bg)
		if !res.Applied {
			t.Fatalf("合成が行われませんでした: %v", res.Err)
		}
		if res.Classification != Light {
			t.Errorf("分類の期待値 light, 実際の値 %s", res.Classification)
		}
		if res.Asset != LogoDark {
			t.Errorf("アセットの期待値 %s, 実際の値 %s", LogoDark, res.Asset)
		}

		r, g, _, _ := out.At(500, 100).RGBA()
		if r>>8 < 190 || g>>8 > 60 {
			t.Errorf("ロゴ領域に濃色ロゴの赤が見つかりません: r=%d g=%d", r>>8, g>>8)
		}
	})

	t.Run("入力の背景画像は変更されないこと", func(t *testing.T) {
		bg := imaging.New(300, 200, color.NRGBA{0, 0, 0, 255})
		ref := imaging.Clone(bg)
		comp := New(store, ModePlain)

		comp.Apply(bg)
		if !pixelsEqual(bg, ref) {
			t.Error("入力画像が破壊されています")
		}
	})

	t.Run("アセットが存在しない場合は元画像がそのまま返ること", func(t *testing.T) {
		empty := asset.NewStore(t.TempDir())
		bg := imaging.New(200, 150, color.NRGBA{30, 60, 90, 255})
		comp := New(empty, ModePlain)

		out, res := comp.Apply(bg)
		if res.Applied {
			t.Error("アセット欠落時に Applied=true になっています")
		}
		if !errors.Is(res.Err, ErrAssetNotFound) {
			t.Errorf("ErrAssetNotFound を期待しましたが %v でした", res.Err)
		}
		if !pixelsEqual(bg, out) {
			t.Error("出力が入力とピクセル単位で一致しません")
		}
	})

	t.Run("参照ロゴ欠落時は分類が medium に縮退して合成は続行されること", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"light_logo", "dark_logo"} {
			img := imaging.New(400, 200, color.NRGBA{10, 20, 30, 255})
			if err := imaging.Save(img, filepath.Join(dir, name+".png")); err != nil {
				t.Fatalf("テスト用ロゴの書き出しに失敗しました: %v", err)
			}
		}
		store := asset.NewStore(dir) // medium_logo.png がない

		bg := imaging.New(1000, 600, color.NRGBA{0, 0, 0, 255})
		comp := New(store, ModePlain)

		_, res := comp.Apply(bg)
		if !res.Applied {
			t.Fatalf("縮退時にも合成は続行されるべきです: %v", res.Err)
		}
		if res.Classification != Medium {
			t.Errorf("分類の期待値 medium, 実際の値 %s", res.Classification)
		}
		if res.Asset != LogoDark {
			t.Errorf("medium は dark_logo に解決されるべきです: %s", res.Asset)
		}
	})
}

func TestCompositorApplyGlow(t *testing.T) {
	store := writeTestLogos(t)

	t.Run("グローモードではロゴの周囲が背景より明るくなること", func(t *testing.T) {
		bg := imaging.New(1200, 800, color.NRGBA{0, 0, 0, 255})
		comp := New(store, ModeGlow)

		out, res := comp.Apply(bg)
		if !res.Applied {
			t.Fatalf("合成が行われませんでした: %v", res.Err)
		}
		if out.Bounds() != bg.Bounds() {
			t.Errorf("出力サイズが変化しています: %v", out.Bounds())
		}

		// ロゴ領域の外側・グローキャンバスの内側で輝度が持ち上がっている
		r, g, b, _ := out.At(900, 200).RGBA()
		if r == 0 && g == 0 && b == 0 {
			t.Error("グローが検出できません")
		}
	})

	t.Run("グローモードでもアセット欠落時は元画像が返ること", func(t *testing.T) {
		empty := asset.NewStore(t.TempDir())
		bg := imaging.New(400, 300, color.NRGBA{0, 0, 0, 255})
		comp := New(empty, ModeGlow)

		out, res := comp.Apply(bg)
		if res.Applied {
			t.Error("アセット欠落時に Applied=true になっています")
		}
		if !pixelsEqual(bg, out) {
			t.Error("出力が入力とピクセル単位で一致しません")
		}
	})
}
