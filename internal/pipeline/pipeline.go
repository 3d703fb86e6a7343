package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/builder"
	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/runner"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
)

// ExecuteGenerate は、シードプロンプトの展開から画像生成・ロゴ合成・保存までの
// 一連のパイプライン（Phase 1〜3）を実行するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(cfg)
	if err != nil {
		return err
	}

	slog.Info("バッチ生成パイプラインを開始するのだ...",
		"seed", cfg.Options.SeedPrompt,
		"prompts", cfg.Options.PromptCount)

	diffusionRunner := builder.BuildDiffusionRunner(appCtx)
	if err := diffusionRunner.Run(ctx); err != nil {
		return fmt.Errorf("バッチ生成に失敗したのだ: %w", err)
	}

	slog.Info("バッチ生成パイプラインが完了したのだ！")
	return nil
}

// ExecuteCompose は、既存フォルダ内の画像へのロゴ一括合成を実行するのだ。
// API呼び出しを伴わないため、AppContext を組み立てずに軽量に動かすのだ。
func ExecuteCompose(ctx context.Context, cfg *config.Config) error {
	assets := asset.NewStore(cfg.Options.LogoDir)
	compositor := builder.InitializeCompositor(cfg.Options, assets)

	composeRunner := runner.NewLogoComposeRunner(compositor, cfg.Options.InputDir)
	if err := composeRunner.Run(ctx); err != nil {
		return fmt.Errorf("ロゴ一括合成に失敗したのだ: %w", err)
	}

	return nil
}

// ExecuteStyle は、参照画像群のスタイルを反映した画像生成を実行するのだ。
func ExecuteStyle(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(cfg)
	if err != nil {
		return err
	}

	styleRunner := builder.BuildStyleRunner(appCtx)
	if err := styleRunner.Run(ctx); err != nil {
		return fmt.Errorf("スタイル参照生成に失敗したのだ: %w", err)
	}

	slog.Info("スタイル参照生成が完了したのだ！")
	return nil
}

// ExecuteVariations は、参照画像のバリエーション生成を実行するのだ。
func ExecuteVariations(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(cfg)
	if err != nil {
		return err
	}

	variationRunner := builder.BuildVariationRunner(appCtx)
	if err := variationRunner.Run(ctx); err != nil {
		return fmt.Errorf("バリエーション生成に失敗したのだ: %w", err)
	}

	slog.Info("バリエーション生成が完了したのだ！")
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(cfg *config.Config) (*builder.AppContext, error) {
	client, err := builder.InitializeProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	out, err := builder.InitializeSink(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to create sink: %w", err)
	}

	assets := asset.NewStore(cfg.Options.LogoDir)
	compositor := builder.InitializeCompositor(cfg.Options, assets)

	appCtx := builder.NewAppContext(cfg, client, out, assets, compositor)
	return &appCtx, nil
}
