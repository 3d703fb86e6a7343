package compose

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestDecode(t *testing.T) {
	t.Run("有効なPNGバイト列はデコードできること", func(t *testing.T) {
		var buf bytes.Buffer
		src := imaging.New(8, 4, color.NRGBA{0, 0, 0, 255})
		if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
			t.Fatalf("テスト画像のエンコードに失敗しました: %v", err)
		}

		img, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatalf("デコードに失敗しました: %v", err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
			t.Errorf("寸法が一致しません: %v", img.Bounds())
		}
	})

	t.Run("画像でないバイト列は ErrDecode になること", func(t *testing.T) {
		_, err := Decode([]byte("not an image"))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("ErrDecode を期待しましたが %v でした", err)
		}
	})
}
