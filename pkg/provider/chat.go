package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/go-diffusion-kit/pkg/prompt"
)

// SendPrompt はシステムプロンプトとユーザープロンプトでチャット補完を実行し、
// 応答本文を返します。
func (c *Client) SendPrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", wrapAPIError("チャット補完", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider: チャット補完の応答が空です")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GeneratePrompts はシードプロンプトを展開し、画像生成用プロンプトを
// count 件生成します。1件ずつ独立した補完として要求します。
func (c *Client) GeneratePrompts(ctx context.Context, seedPrompt string, count int) ([]string, error) {
	prompts := make([]string, 0, count)
	userPrompt := prompt.BuildExpansionPrompt(seedPrompt)

	for i := 0; i < count; i++ {
		generated, err := c.SendPrompt(ctx, prompt.ExpansionSystemPrompt, userPrompt)
		if err != nil {
			return nil, fmt.Errorf("プロンプト展開の%d件目に失敗しました: %w", i+1, err)
		}
		prompts = append(prompts, generated)
	}

	return prompts, nil
}
