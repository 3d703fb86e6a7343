package builder

import (
	"fmt"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/runner"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
	"github.com/shouni/go-diffusion-kit/pkg/compose"
	"github.com/shouni/go-diffusion-kit/pkg/provider"
	"github.com/shouni/go-diffusion-kit/pkg/sink"
)

// BuildDiffusionRunner はプロンプト展開からロゴ合成までの一括生成を担当する Runner を構築します。
func BuildDiffusionRunner(appCtx *AppContext) runner.DiffusionRunner {
	return runner.NewBatchDiffusionRunner(
		appCtx.Provider,
		appCtx.Sink,
		appCtx.Compositor,
		appCtx.Options,
	)
}

// BuildStyleRunner はスタイル参照付き生成を担当する Runner を構築します。
func BuildStyleRunner(appCtx *AppContext) *runner.StyleRunner {
	return runner.NewStyleRunner(appCtx.Provider, appCtx.Sink, appCtx.Options)
}

// BuildVariationRunner は参照画像のバリエーション生成を担当する Runner を構築します。
func BuildVariationRunner(appCtx *AppContext) *runner.VariationRunner {
	return runner.NewVariationRunner(appCtx.Provider, appCtx.Sink, appCtx.Options)
}

// InitializeProvider は OpenAI クライアントを初期化します。
// モデル名はCLIフラグが環境変数より優先されるのだ。
func InitializeProvider(cfg *config.Config) (*provider.Client, error) {
	chatModel := cfg.ChatModel
	if cfg.Options.ChatModel != "" {
		chatModel = cfg.Options.ChatModel
	}
	imageModel := cfg.ImageModel
	if cfg.Options.ImageModel != "" {
		imageModel = cfg.Options.ImageModel
	}

	client, err := provider.New(provider.Config{
		APIKey:      cfg.OpenAIAPIKey,
		ChatModel:   chatModel,
		ImageModel:  imageModel,
		HTTPTimeout: cfg.Options.HTTPTimeout,
		// 流量制限は Runner 側の limiter で行うため、ここでは設定しない
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAIクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// InitializeSink は保存モードに応じた Sink を初期化します。
func InitializeSink(opts config.GenerateOptions) (*sink.Sink, error) {
	mode := sink.ModeFolder
	if opts.FlatMode {
		mode = sink.ModeFlat
	}

	out, err := sink.New(opts.ImageDir, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("保存先の初期化に失敗しました: %w", err)
	}
	return out, nil
}

// InitializeCompositor はロゴ合成器を初期化します。
func InitializeCompositor(opts config.GenerateOptions, assets *asset.Store) *compose.Compositor {
	mode := compose.ModePlain
	if opts.Glow {
		mode = compose.ModeGlow
	}
	return compose.New(assets, mode)
}
