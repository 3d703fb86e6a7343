package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/go-diffusion-kit/pkg/domain"
)

// バリエーションAPIが受け付ける件数の範囲です。
const (
	minVariations = 1
	maxVariations = 10
)

// Variations は参照画像のバリエーションを count 件生成します。
// 参照画像は正方形の PNG である必要があります（APIの制約）。
// 個々のバリエーションの失敗はログに残してスキップし、成功分だけを返します。
func (c *Client) Variations(ctx context.Context, referencePath string, count int, size domain.Size) ([]domain.Variation, error) {
	if _, err := os.Stat(referencePath); err != nil {
		return nil, fmt.Errorf("provider: 参照画像 '%s' が存在しません: %w", referencePath, err)
	}
	if count < minVariations || count > maxVariations {
		return nil, fmt.Errorf("provider: バリエーション件数は %d〜%d で指定してください (指定値: %d)",
			minVariations, maxVariations, count)
	}

	clamped := ClosestSupportedSize(size.Width, size.Height)
	baseName := filepath.Base(referencePath)

	variations := make([]domain.Variation, 0, count)
	for i := 0; i < count; i++ {
		data, err := c.createVariation(ctx, referencePath, clamped)
		if err != nil {
			slog.Error("バリエーション生成に失敗したためスキップします", "index", i+1, "error", err)
			continue
		}

		variations = append(variations, domain.Variation{
			OriginalName:  baseName,
			VariationName: fmt.Sprintf("variation_%d_%s", i+1, baseName),
			Data:          data,
		})
	}

	return variations, nil
}

// createVariation は1件のバリエーションを生成します。
// APIは1リクエストにつき1枚ずつ要求します。
func (c *Client) createVariation(ctx context.Context, referencePath string, size domain.Size) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(referencePath)
	if err != nil {
		return nil, fmt.Errorf("provider: 参照画像を開けませんでした: %w", err)
	}
	defer f.Close()

	resp, err := c.api.CreateVariImage(ctx, openai.ImageVariRequest{
		Image:          f,
		N:              1,
		Size:           size.String(),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, wrapAPIError("画像バリエーションの生成", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("provider: バリエーションのデータが返されませんでした")
	}

	return c.imageBytes(ctx, resp.Data[0])
}
