package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// composeCmd は、既存フォルダ内の画像へロゴを一括合成するためのサブコマンドなのだ。
// 画像生成をスキップして、ロゴ合成（Phase 3）のみをオフラインで行うのだ。
var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "既存フォルダの画像にロゴを一括合成するのだ。",
	Long: `すでに生成・収集済みの画像フォルダを読み込み、各画像の上端中央の明るさを判定して
適切なロゴを合成するのだ。APIを呼ばないので、ロゴの再合成や調整に便利なのだ。`,
	RunE: composeCommand,
}

// init は、compose コマンド固有のフラグを定義するのだ。
func init() {
	composeCmd.Flags().StringVar(&opts.InputDir, "input-dir", "", "ロゴを合成する画像が入ったフォルダなのだ。")
}

// composeCommand は、compose サブコマンドの実行ロジック本体なのだ。
func composeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// --input-dir がユーザーによって指定されなかった場合、
	// composeコマンド固有のデフォルト値を設定する
	if !cmd.Flags().Changed("input-dir") {
		opts.InputDir = config.DefaultImageDir
	}

	if opts.InputDir == "" {
		return fmt.Errorf("処理対象のフォルダ（--input-dir）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("ロゴ一括合成モードを起動するのだ！",
		"input_dir", cfg.Options.InputDir,
		"logo_dir", cfg.Options.LogoDir,
		"glow", cfg.Options.Glow)

	return pipeline.ExecuteCompose(ctx, cfg)
}
