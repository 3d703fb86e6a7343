package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-diffusion-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は、各サブコマンドが共有する実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- プロンプト関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.SeedPrompt, "seed-prompt", "s", config.DefaultSeedPrompt, "展開の元になるシードプロンプトなのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.PromptCount, "prompt-count", "n", config.DefaultPromptCount, "シードから展開するプロンプトの件数なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.ImageCount, "image-count", config.DefaultImageCount, "1プロンプトあたりの生成枚数なのだ。")

	// --- 画像サイズ・入出力設定 ---
	rootCmd.PersistentFlags().IntVar(&opts.Width, "width", config.DefaultImageWidth, "生成画像の幅なのだ（サポート外はAPIの近い寸法に丸めるのだ）。")
	rootCmd.PersistentFlags().IntVar(&opts.Height, "height", config.DefaultImageHeight, "生成画像の高さなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ImageDir, "image-dir", "i", config.DefaultImageDir, "生成画像とCSVログの保存先ディレクトリなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.LogoDir, "logo-dir", "l", config.DefaultLogoDir, "dark_logo.png / light_logo.png の置き場なのだ。")

	// --- ロゴ合成の挙動設定 ---
	rootCmd.PersistentFlags().BoolVarP(&opts.Glow, "glow", "g", false, "ロゴの背後に発光レイヤーを敷くのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.FlatMode, "flat", false, "サブフォルダを作らずカレント直下に保存するのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.KeepRaw, "keep-raw", false, "中間のrawファイルを削除せずに残すのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.ChatModel, "model", "", "プロンプト展開とスタイル記述に使うモデル名なのだ（省略時は環境変数）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使うモデル名なのだ（省略時は環境変数）。")
	rootCmd.PersistentFlags().DurationVar(&opts.RequestInterval, "request-interval", config.DefaultRateLimit, "画像生成リクエストの間隔なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "APIリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// compose は完全ローカル処理なので、APIキーなしでも動かせるのだ
	if cmd.Name() == "compose" {
		return nil
	}

	// OpenAI APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 OPENAI_API_KEY が設定されていません。OpenAI APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-diffusion-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		composeCmd,
		styleCmd,
		variationCmd,
	)
}
