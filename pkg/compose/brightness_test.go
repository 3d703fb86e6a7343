package compose

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
)

func TestSample(t *testing.T) {
	t.Run("全黒の背景は輝度0になること", func(t *testing.T) {
		bg := imaging.New(1024, 1792, color.NRGBA{0, 0, 0, 255})

		got, err := Sample(bg, 400, 100)
		if err != nil {
			t.Fatalf("サンプリングでエラーが発生しました: %v", err)
		}
		if got != 0 {
			t.Errorf("期待値 0, 実際の値 %f", got)
		}
	})

	t.Run("全白の背景は輝度255付近になること", func(t *testing.T) {
		bg := imaging.New(1024, 1792, color.NRGBA{255, 255, 255, 255})

		got, err := Sample(bg, 400, 100)
		if err != nil {
			t.Fatalf("サンプリングでエラーが発生しました: %v", err)
		}
		if math.Abs(got-255) > 1e-9 {
			t.Errorf("期待値 255, 実際の値 %f", got)
		}
	})

	t.Run("同一のピクセルデータからは同一の値が得られること", func(t *testing.T) {
		bg := imaging.New(640, 480, color.NRGBA{120, 80, 200, 255})

		first, err := Sample(bg, 300, 90)
		if err != nil {
			t.Fatalf("1回目のサンプリングに失敗しました: %v", err)
		}
		second, err := Sample(bg, 300, 90)
		if err != nil {
			t.Fatalf("2回目のサンプリングに失敗しました: %v", err)
		}
		if first != second {
			t.Errorf("決定性が破れています: %f != %f", first, second)
		}
	})

	t.Run("単色背景では知覚輝度の重み付けが反映されること", func(t *testing.T) {
		// 緑のみの場合、輝度は 0.587 * 255 に一致する
		bg := imaging.New(200, 200, color.NRGBA{0, 255, 0, 255})

		got, err := Sample(bg, 100, 50)
		if err != nil {
			t.Fatalf("サンプリングでエラーが発生しました: %v", err)
		}
		want := 0.587 * 255
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("期待値 %f, 実際の値 %f", want, got)
		}
	})

	t.Run("1ピクセルの領域でもゼロ除算なく動作すること", func(t *testing.T) {
		bg := imaging.New(100, 100, color.NRGBA{50, 50, 50, 255})

		got, err := Sample(bg, 1, 1)
		if err != nil {
			t.Fatalf("サンプリングでエラーが発生しました: %v", err)
		}
		if got != 50 {
			t.Errorf("期待値 50, 実際の値 %f", got)
		}
	})

	t.Run("領域が背景より広い場合は幾何エラーになること", func(t *testing.T) {
		bg := imaging.New(100, 100, color.NRGBA{0, 0, 0, 255})

		if _, err := Sample(bg, 200, 50); !errors.Is(err, ErrGeometry) {
			t.Errorf("ErrGeometry を期待しましたが %v でした", err)
		}
	})

	t.Run("上端マージン込みで高さが不足する場合は幾何エラーになること", func(t *testing.T) {
		bg := imaging.New(100, 100, color.NRGBA{0, 0, 0, 255})

		// 20 + 90 > 100
		if _, err := Sample(bg, 50, 90); !errors.Is(err, ErrGeometry) {
			t.Errorf("ErrGeometry を期待しましたが %v でした", err)
		}
	})

	t.Run("面積0の領域は幾何エラーになること", func(t *testing.T) {
		bg := imaging.New(100, 100, color.NRGBA{0, 0, 0, 255})

		if _, err := Sample(bg, 0, 10); !errors.Is(err, ErrGeometry) {
			t.Errorf("ErrGeometry を期待しましたが %v でした", err)
		}
	})
}

func TestClassify(t *testing.T) {
	// 境界値はビット単位で固定の仕様なので、ひとつずつ検証する
	cases := []struct {
		sample float64
		want   Classification
	}{
		{0, Dark},
		{34.999, Dark},
		{35, Medium},
		{44.999, Medium},
		{45, Light},
		{255, Light},
	}

	for _, c := range cases {
		if got := Classify(c.sample); got != c.want {
			t.Errorf("Classify(%f): 期待値 %s, 実際の値 %s", c.sample, c.want, got)
		}
	}
}
