package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// variationCmd は、参照画像のバリエーションを生成するサブコマンドなのだ。
var variationCmd = &cobra.Command{
	Use:   "variation",
	Short: "参照画像のバリエーションを生成して保存するのだ。",
	Long: `参照フォルダ内の各画像をAPIの入力制約（PNG・4MB以下）に合わせて最適化してから、
バリエーションを指定枚数ずつ生成するのだ。`,
	RunE: variationCommand,
}

// init は、variation コマンド固有のフラグを定義するのだ。
func init() {
	variationCmd.Flags().IntVarP(&opts.VariationCount, "variation-count", "v", config.DefaultVariationCount, "参照画像1枚あたりのバリエーション枚数なのだ。")
	variationCmd.Flags().StringVar(&opts.StyleRefDir, "style-dir", config.DefaultStyleRefDir, "参照画像が入ったフォルダなのだ。")
}

// variationCommand は、variation サブコマンドの実行ロジック本体なのだ。
func variationCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.VariationCount < 1 || opts.VariationCount > 10 {
		return fmt.Errorf("バリエーション枚数（--variation-count）は1〜10で指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("バリエーション生成モードを起動するのだ！",
		"style_dir", cfg.Options.StyleRefDir,
		"variation_count", cfg.Options.VariationCount)

	return pipeline.ExecuteVariations(ctx, cfg)
}
