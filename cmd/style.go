package cmd

import (
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// styleCmd は、参照画像群のスタイルを反映した画像生成を実行するサブコマンドなのだ。
var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "参照画像のスタイルを反映した画像を生成するのだ。",
	Long: `参照フォルダ内の画像からスタイル記述を抽出し、内容プロンプトと合成して画像を生成するのだ。
同じ参照セットへのスタイル記述はキャッシュされるので、繰り返し実行にも向いているのだ。`,
	RunE: styleCommand,
}

// init は、style コマンド固有のフラグを定義するのだ。
func init() {
	styleCmd.Flags().StringVarP(&opts.ContentPrompt, "content-prompt", "c", config.DefaultContentPrompt, "生成したい内容を表すプロンプトなのだ。")
	styleCmd.Flags().StringVar(&opts.StyleRefDir, "style-dir", config.DefaultStyleRefDir, "スタイル参照画像が入ったフォルダなのだ。")
}

// styleCommand は、style サブコマンドの実行ロジック本体なのだ。
func styleCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("スタイル参照生成モードを起動するのだ！",
		"style_dir", cfg.Options.StyleRefDir,
		"content_prompt", cfg.Options.ContentPrompt,
		"image_count", cfg.Options.ImageCount)

	return pipeline.ExecuteStyle(ctx, cfg)
}
