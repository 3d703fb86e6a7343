package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/go-diffusion-kit/pkg/domain"
)

// GenerateImage はプロンプトから画像を1枚生成します。
// 要求寸法はサポート寸法の最近傍に丸められます。
func (c *Client) GenerateImage(ctx context.Context, promptText string, size domain.Size) (*domain.GeneratedImage, error) {
	clamped := ClosestSupportedSize(size.Width, size.Height)
	if clamped != size {
		slog.Info("要求寸法をサポート寸法に丸めました", "requested", size.String(), "clamped", clamped.String())
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         promptText,
		N:              1,
		Size:           clamped.String(),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, wrapAPIError("画像生成", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("provider: 画像データが返されませんでした")
	}

	data, err := c.imageBytes(ctx, resp.Data[0])
	if err != nil {
		return nil, err
	}

	return &domain.GeneratedImage{
		Prompt:        promptText,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
		Data:          data,
		MimeType:      "image/png",
	}, nil
}

// GenerateImages は同一プロンプトで複数枚を生成します。
// APIは1回につき1枚しか生成できないため、枚数分のリクエストを順に行います。
func (c *Client) GenerateImages(ctx context.Context, promptText string, size domain.Size, count int) ([]*domain.GeneratedImage, error) {
	if count < 1 {
		count = 1
	}

	images := make([]*domain.GeneratedImage, 0, count)
	for i := 0; i < count; i++ {
		img, err := c.GenerateImage(ctx, promptText, size)
		if err != nil {
			return nil, fmt.Errorf("%d枚目の生成に失敗しました: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// imageBytes は API レスポンスの1件から画像バイト列を取り出します。
// b64_json を優先し、URL形式のレスポンスはダウンロードで解決します。
func (c *Client) imageBytes(ctx context.Context, data openai.ImageResponseDataInner) ([]byte, error) {
	if data.B64JSON != "" {
		decoded, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("provider: base64デコードに失敗しました: %w", err)
		}
		return decoded, nil
	}

	if data.URL != "" {
		return c.download(ctx, data.URL)
	}

	return nil, errors.New("provider: レスポンスに画像データもURLも含まれていません")
}

// download は画像URLの内容を取得します。
func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("provider: ダウンロード要求の作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider: 画像のダウンロードに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider: 画像のダウンロードがステータス %d で失敗しました", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
