package asset

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestStoreLogo(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	t.Run("論理名からパスが組み立てられること", func(t *testing.T) {
		want := filepath.Join(dir, "dark_logo.png")
		if got := store.Path("dark_logo"); got != want {
			t.Errorf("期待値 %s, 実際の値 %s", want, got)
		}
	})

	t.Run("存在しないアセットはエラーになること", func(t *testing.T) {
		if _, err := store.Logo("dark_logo"); err == nil {
			t.Error("欠落アセットでエラーが発生しませんでした")
		}
	})

	t.Run("存在するアセットは読み込めること", func(t *testing.T) {
		img := imaging.New(40, 20, color.NRGBA{255, 255, 255, 255})
		if err := imaging.Save(img, store.Path("light_logo")); err != nil {
			t.Fatalf("テスト用ロゴの保存に失敗しました: %v", err)
		}

		loaded, err := store.Logo("light_logo")
		if err != nil {
			t.Fatalf("読み込みに失敗しました: %v", err)
		}
		if loaded.Bounds().Dx() != 40 || loaded.Bounds().Dy() != 20 {
			t.Errorf("寸法が一致しません: %v", loaded.Bounds())
		}
	})
}

func TestIsLogoFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"images/dark_logo.png", true},
		{"images/20240601_brand_logo.png", true},
		{"images/generated.png", false},
		{"images/logo.png", false},
	}

	for _, c := range cases {
		if got := IsLogoFile(c.path); got != c.want {
			t.Errorf("IsLogoFile(%q): 期待値 %v, 実際の値 %v", c.path, c.want, got)
		}
	}
}
