package builder

import (
	"github.com/shouni/go-diffusion-kit/internal/config"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
	"github.com/shouni/go-diffusion-kit/pkg/compose"
	"github.com/shouni/go-diffusion-kit/pkg/provider"
	"github.com/shouni/go-diffusion-kit/pkg/sink"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（プロンプト、サイズ、保存先など）。
	Provider   *provider.Client       // Providerは、プロンプト展開と画像生成に使う共通クライアントです。
	Sink       *sink.Sink             // Sinkは、生成物のローカル保存とCSVログを担う出力先です。
	Assets     *asset.Store           // Assetsは、ロゴ画像の読み込み元です。
	Compositor *compose.Compositor    // Compositorは、背景の明るさに応じたロゴ合成を担います。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	client *provider.Client,
	out *sink.Sink,
	assets *asset.Store,
	compositor *compose.Compositor,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Provider:   client,
		Sink:       out,
		Assets:     assets,
		Compositor: compositor,
	}
}
