package provider

import "github.com/shouni/go-diffusion-kit/pkg/domain"

// supportedSizes は画像生成APIが受け付ける寸法の一覧です。
var supportedSizes = []domain.Size{
	{Width: 1024, Height: 1024},
	{Width: 1024, Height: 1792},
	{Width: 1792, Height: 1024},
}

// ClosestSupportedSize は要求された寸法に最も近いサポート寸法を返します。
// 距離は幅と高さの差の絶対値の和で評価します。
func ClosestSupportedSize(width, height int) domain.Size {
	best := supportedSizes[0]
	bestDist := sizeDistance(best, width, height)

	for _, s := range supportedSizes[1:] {
		if d := sizeDistance(s, width, height); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

func sizeDistance(s domain.Size, width, height int) int {
	return abs(s.Width-width) + abs(s.Height-height)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
