package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// グローキャンバスの余白・ぼかし・ロゴのインセットの定数です。
// キャンバスはロゴより一回り大きく取り、強いぼかしで輪郭を拡散させます。
const (
	glowPadW  = 600   // キャンバス幅 = ロゴ幅 + glowPadW
	glowPadH  = 400   // キャンバス高 = ロゴ高 + glowPadH
	glowSigma = 100.0 // ガウスぼかしの強さ
	glowInset = 100   // グローキャンバス原点からのロゴのオフセット
	glowAlpha = 0.85
)

// pasteLogoWithGlow は、拡縮済みロゴの背後に楕円グローを敷いてから合成します。
// グロー層は水平中央・上端 TopMargin に置き、ロゴはその原点から
// (glowInset, glowInset) だけ内側に重ねます。
func pasteLogoWithGlow(background, logo image.Image) image.Image {
	bgW := background.Bounds().Dx()
	scaled := scaleLogo(logo, bgW)

	glow := glowLayer(scaled.Bounds().Dx(), scaled.Bounds().Dy())

	glowX := (bgW - glow.Bounds().Dx()) / 2
	glowY := TopMargin

	out := imaging.Overlay(background, glow, image.Pt(glowX, glowY), 1.0)
	return imaging.Overlay(out, scaled, image.Pt(glowX+glowInset, glowY+glowInset), 1.0)
}

// glowLayer は透明キャンバスに塗りつぶし楕円を描き、強くぼかしたグロー層を返します。
func glowLayer(logoW, logoH int) image.Image {
	w := logoW + glowPadW
	h := logoH + glowPadH

	dc := gg.NewContext(w, h)
	dc.DrawEllipse(float64(w)/2, float64(h)/2, float64(w)/2, float64(h)/2)
	dc.SetRGBA(1, 1, 1, glowAlpha)
	dc.Fill()

	return imaging.Blur(dc.Image(), glowSigma)
}
