package compose

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Mode はロゴの描画戦略です。通常貼り付けとグロー付きは排他で、組み合わせはできません。
type Mode int

const (
	// ModePlain はロゴをそのままアルファ合成します。
	ModePlain Mode = iota
	// ModeGlow はロゴの背後に柔らかい楕円グローを敷いてから合成します。
	ModeGlow
)

// AssetSource はロゴアセットの引き当てを抽象化します。asset.Store が実装します。
type AssetSource interface {
	// Logo は論理名に対応するロゴ画像を返します。
	Logo(name string) (image.Image, error)
	// Reference はサンプリング領域の寸法決定に使う参照ロゴを返します。
	Reference() (image.Image, error)
}

// Result は1回の合成の成否と判断根拠を保持します。
// バッチ処理の呼び出し側は、例外処理なしで項目ごとの結果を検査できます。
type Result struct {
	Applied        bool           // ロゴが実際に合成されたか
	Classification Classification // 採用した輝度分類（参照ロゴ欠落時は medium に縮退）
	Sample         float64        // 平均知覚輝度。サンプリングに失敗した場合は 0
	Asset          string         // 選択されたロゴの論理名
	Err            error          // 合成を断念した原因。Applied が true なら nil
}

// Compositor は背景輝度に応じたロゴ選択と合成を行います。
// 状態を持たないため、同一の入力とアセットに対して何度呼んでも結果は同じです。
type Compositor struct {
	assets AssetSource
	mode   Mode
}

// New は Compositor を生成します。
func New(assets AssetSource, mode Mode) *Compositor {
	return &Compositor{assets: assets, mode: mode}
}

// Apply は背景画像にロゴを合成し、新しい画像と Result を返します。
// アセット欠落などで合成できない場合は、入力の背景をそのまま返します。
// この操作がバッチ全体を止めることはありません。
func (c *Compositor) Apply(background image.Image) (image.Image, Result) {
	res := Result{}

	res.Classification, res.Sample = c.classifyBackground(background)
	res.Asset = SelectLogo(res.Classification)

	logo, err := c.assets.Logo(res.Asset)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrAssetNotFound, err)
		slog.Warn("ロゴ合成をスキップして元画像を返します", "asset", res.Asset, "error", err)
		return background, res
	}

	var out image.Image
	switch c.mode {
	case ModeGlow:
		out = pasteLogoWithGlow(background, logo)
	default:
		out = pasteLogo(background, logo)
	}

	res.Applied = true
	return out, res
}

// classifyBackground は参照ロゴの寸法で背景をサンプリングし、輝度を分類します。
// 参照ロゴの読み込み失敗やサンプリング失敗は分類の縮退（medium）に倒し、
// 合成処理そのものは続行させます。
func (c *Compositor) classifyBackground(background image.Image) (Classification, float64) {
	ref, err := c.assets.Reference()
	if err != nil {
		slog.Warn("参照ロゴを読み込めないため、輝度分類を medium に縮退します", "error", err)
		return Medium, 0
	}

	refBounds := ref.Bounds()
	sample, err := Sample(background, refBounds.Dx(), refBounds.Dy())
	if err != nil {
		slog.Warn("輝度サンプリングに失敗したため、分類を medium に縮退します", "error", err)
		return Medium, 0
	}

	return Classify(sample), sample
}

// pasteLogo はロゴを背景幅の 1/2 に拡縮し、水平中央・上端 TopMargin に合成します。
// 拡縮は Lanczos 固定です。最近傍補間はバンディングが出るため使用しません。
func pasteLogo(background, logo image.Image) image.Image {
	bgW := background.Bounds().Dx()
	scaled := scaleLogo(logo, bgW)

	x := (bgW - scaled.Bounds().Dx()) / 2
	return imaging.Overlay(background, scaled, image.Pt(x, TopMargin), 1.0)
}

// scaleLogo はアスペクト比を保ったまま、ロゴの幅を背景幅の 1/2 に合わせます。
func scaleLogo(logo image.Image, backgroundWidth int) *image.NRGBA {
	return imaging.Resize(logo, backgroundWidth/2, 0, imaging.Lanczos)
}
