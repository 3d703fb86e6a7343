package compose

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ITU-R BT.601 の知覚輝度の重み係数です。
// しきい値（darkThreshold / lightThreshold）はこの係数と対になって調整されており、
// 単純グレースケール平均（しきい値 85/170 の旧方式）とは互換性がありません。
// 式としきい値は必ずこのファイル内のペアで使用します。
const (
	lumaWeightR = 0.299
	lumaWeightG = 0.587
	lumaWeightB = 0.114
)

// 輝度分類のしきい値です。knee が2つあるため3状態に分かれます。
const (
	darkThreshold  = 35.0 // これ未満なら dark
	lightThreshold = 45.0 // これ以上なら light、間は medium
)

// TopMargin はロゴ配置およびサンプリング領域の上端マージン（ピクセル）です。
// サンプリングした領域と実際の配置先が一致するよう、両者で同じ定数を共有します。
const TopMargin = 20

// Classification は背景輝度の分類結果です。
type Classification string

const (
	Dark   Classification = "dark"
	Medium Classification = "medium"
	Light  Classification = "light"
)

// perceptualBrightness は1ピクセルの知覚輝度を返します。ガンマ補正は行いません。
func perceptualBrightness(r, g, b uint8) float64 {
	return lumaWeightR*float64(r) + lumaWeightG*float64(g) + lumaWeightB*float64(b)
}

// Sample は、ロゴが配置される予定の領域（水平中央・上端から TopMargin）の
// 平均知覚輝度を [0, 255] で返します。
// 領域が背景からはみ出す場合や面積が0の場合は ErrGeometry を返します。
func Sample(background image.Image, regionWidth, regionHeight int) (float64, error) {
	if regionWidth <= 0 || regionHeight <= 0 {
		return 0, fmt.Errorf("%w: サンプリング領域の面積が0です (%dx%d)", ErrGeometry, regionWidth, regionHeight)
	}

	bounds := background.Bounds()
	bgW, bgH := bounds.Dx(), bounds.Dy()

	x := (bgW - regionWidth) / 2
	y := TopMargin
	if x < 0 || regionWidth > bgW || y+regionHeight > bgH {
		return 0, fmt.Errorf("%w: 領域 %dx%d は背景 %dx%d に収まりません",
			ErrGeometry, regionWidth, regionHeight, bgW, bgH)
	}

	// RGB として評価するため NRGBA に正規化してから切り出します。
	region := imaging.Crop(background, image.Rect(
		bounds.Min.X+x,
		bounds.Min.Y+y,
		bounds.Min.X+x+regionWidth,
		bounds.Min.Y+y+regionHeight,
	))

	var total float64
	for py := 0; py < regionHeight; py++ {
		rowStart := py * region.Stride
		for px := 0; px < regionWidth; px++ {
			i := rowStart + px*4
			total += perceptualBrightness(region.Pix[i], region.Pix[i+1], region.Pix[i+2])
		}
	}

	return total / float64(regionWidth*regionHeight), nil
}

// Classify は平均知覚輝度を dark / medium / light に分類します。
// 境界値はビット単位で固定です: sample < 35 → dark、35 ≦ sample < 45 → medium、45 ≦ sample → light。
func Classify(sample float64) Classification {
	switch {
	case sample < darkThreshold:
		return Dark
	case sample < lightThreshold:
		return Medium
	default:
		return Light
	}
}
