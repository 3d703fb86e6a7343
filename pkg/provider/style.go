package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/go-diffusion-kit/pkg/domain"
	"github.com/shouni/go-diffusion-kit/pkg/prompt"
)

// StyleGeneration はスタイル参照付き生成の成果物一式です。
// 生成画像に加えて、記録用にスタイル記述と合成プロンプトを保持します。
type StyleGeneration struct {
	StyleDescription string
	CombinedPrompt   string
	Images           []*domain.GeneratedImage
}

// DescribeStyle は1枚の画像のスタイル記述を Vision 呼び出しで取得します。
func (c *Client) DescribeStyle(ctx context.Context, imagePath string) (string, error) {
	dataURL, err := encodeImageDataURL(imagePath)
	if err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt.StyleDescriptionInstruction},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", wrapAPIError("スタイル記述の取得", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider: スタイル記述の応答が空です")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CombinedStyleDescription は複数の参照画像に共通するスタイル記述を取得します。
// 同じ画像セットに対する結果はキャッシュされます。
func (c *Client) CombinedStyleDescription(ctx context.Context, imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", errors.New("provider: 参照画像が指定されていません")
	}

	cacheKey := strings.Join(imagePaths, "|")
	if cached, ok := c.styleCache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt.BuildCombinedStyleInstruction()},
	}
	for _, path := range imagePaths {
		dataURL, err := encodeImageDataURL(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL,
				Detail: openai.ImageURLDetailHigh,
			},
		})
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		return "", wrapAPIError("統合スタイル記述の取得", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider: 統合スタイル記述の応答が空です")
	}

	description := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.styleCache.Set(cacheKey, description, cache.DefaultExpiration)
	return description, nil
}

// MergeStyleDescriptions は複数のスタイル記述を1つの統合プロンプトに集約します。
func (c *Client) MergeStyleDescriptions(ctx context.Context, descriptions []string) (string, error) {
	return c.SendPrompt(ctx, prompt.MergeSystemPrompt, prompt.BuildMergePrompt(descriptions))
}

// CombinePromptWithStyles は内容プロンプトとスタイル記述を合成した
// 画像生成用プロンプトを作ります。
func (c *Client) CombinePromptWithStyles(ctx context.Context, contentPrompt, styleDescription string) (string, error) {
	return c.SendPrompt(ctx, prompt.CombineSystemPrompt, prompt.BuildCombinePrompt(contentPrompt, styleDescription))
}

// GenerateWithStyleReferences は参照画像群のスタイルを反映した画像を生成します。
func (c *Client) GenerateWithStyleReferences(ctx context.Context, imagePaths []string, contentPrompt string, size domain.Size, count int) (*StyleGeneration, error) {
	style, err := c.CombinedStyleDescription(ctx, imagePaths)
	if err != nil {
		return nil, err
	}

	combined, err := c.CombinePromptWithStyles(ctx, contentPrompt, style)
	if err != nil {
		return nil, err
	}

	images, err := c.GenerateImages(ctx, combined, size, count)
	if err != nil {
		return nil, err
	}

	return &StyleGeneration{
		StyleDescription: style,
		CombinedPrompt:   combined,
		Images:           images,
	}, nil
}

// encodeImageDataURL は画像ファイルを data URL 形式の base64 文字列にします。
func encodeImageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("provider: 参照画像 '%s' の読み込みに失敗しました: %w", path, err)
	}

	mimeType := "image/jpeg"
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		mimeType = "image/png"
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
