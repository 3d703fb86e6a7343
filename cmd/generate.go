package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、シードプロンプトから画像の一括生成を実行するメインのサブコマンドなのだ。
// プロンプト展開（Phase 1）、画像生成（Phase 2）、ロゴ合成と保存（Phase 3）を通しで行うのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "シードプロンプトから画像を一括生成して保存するのだ。",
	Long: `シードプロンプトをチャットモデルで複数の詳細プロンプトに展開し、
それぞれを画像生成モデルに渡して画像を生成するのだ。
生成画像には背景の明るさに応じたロゴが自動で合成されるのだ。`,
	RunE: generateCommand,
}

// generateCommand は、generate サブコマンドの実行ロジック本体なのだ。
func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.PromptCount <= 0 {
		return fmt.Errorf("プロンプト件数（--prompt-count）は1以上を指定してほしいのだ")
	}

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. コマンドライン引数の値を反映
	cfg.Options = opts

	slog.Info("バッチ生成モードを起動するのだ！",
		"seed_prompt", cfg.Options.SeedPrompt,
		"prompt_count", cfg.Options.PromptCount,
		"image_dir", cfg.Options.ImageDir,
		"glow", cfg.Options.Glow)

	// 3. パイプライン実行
	return pipeline.ExecuteGenerate(ctx, cfg)
}
