package sink

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// PNG 最適化のパラメータです。縮小は5%刻みで、元の40%を下限とします。
const (
	DefaultMaxPNGBytes  = 4 * 1024 * 1024
	resizeStep          = 0.05
	minResizeFactor     = 0.4
	initialResizeFactor = 0.95
)

// FitCrop は保存済み画像を読み込み、中央基準で目標寸法にフィットさせて返します。
// 拡縮は Lanczos 固定です。
func FitCrop(path string, targetWidth, targetHeight int) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("画像 '%s' の読み込みに失敗しました: %w", path, err)
	}
	return imaging.Fill(img, targetWidth, targetHeight, imaging.Center, imaging.Lanczos), nil
}

// OptimizePNG は画像を PNG に変換し、ファイルサイズが maxBytes を超えないよう
// 減色と段階的な縮小で最適化します。最終的な PNG のパスを返します。
// JPG/JPEG は PNG へ変換し、それ以外の非 PNG 形式はエラーになります。
func OptimizePNG(path string, maxBytes int64) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("ファイル '%s' が存在しません: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		converted, err := convertToPNG(path)
		if err != nil {
			return "", err
		}
		path = converted
	case ".png":
		// 変換不要。サイズ最適化のみ行う
	default:
		return "", fmt.Errorf("未対応の画像形式です: %s (JPG/JPEG/PNG のみ対応)", ext)
	}

	size, err := fileSize(path)
	if err != nil {
		return "", err
	}
	if size <= maxBytes {
		return path, nil
	}

	// Step 1: 256色に減色して再保存する
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("画像 '%s' の読み込みに失敗しました: %w", path, err)
	}
	if err := savePNG(quantize(img), path); err != nil {
		return "", err
	}

	size, err = fileSize(path)
	if err != nil {
		return "", err
	}

	// Step 2: まだ超過していれば、5%刻みで縮小を繰り返す
	factor := initialResizeFactor
	for size > maxBytes && factor >= minResizeFactor {
		w := int(float64(img.Bounds().Dx()) * factor)
		resized := imaging.Resize(img, w, 0, imaging.Lanczos)
		if err := savePNG(quantize(resized), path); err != nil {
			return "", err
		}

		size, err = fileSize(path)
		if err != nil {
			return "", err
		}
		factor -= resizeStep
	}

	if size > maxBytes {
		return "", fmt.Errorf("縮小と最適化を行っても %d バイト以下にできませんでした (現在 %d バイト)", maxBytes, size)
	}

	return path, nil
}

// convertToPNG は JPEG 画像を同名の .png として保存し、新しいパスを返します。
func convertToPNG(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("画像 '%s' の読み込みに失敗しました: %w", path, err)
	}

	newPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	if err := savePNG(img, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// quantize は誤差拡散で256色のパレット画像に減色します。
func quantize(img image.Image) image.Image {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
	return paletted
}

// savePNG は画像を PNG としてエンコード保存します。
func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ファイル '%s' の作成に失敗しました: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("PNGエンコードに失敗しました: %w", err)
	}
	return nil
}

// fileSize はファイルのバイトサイズを返します。
func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("ファイルサイズの取得に失敗しました: %w", err)
	}
	return info.Size(), nil
}
