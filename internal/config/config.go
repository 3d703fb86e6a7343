package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultChatModel      = "gpt-4o-mini"
	DefaultImageModel     = "dall-e-3"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateLimit      = 15 * time.Second
	DefaultPromptCount    = 5
	DefaultImageCount     = 1
	DefaultVariationCount = 4
	DefaultImageWidth     = 1024
	DefaultImageHeight    = 1792
	DefaultImageDir       = "images" // 生成画像とCSVログの保存先なのだ
	DefaultLogoDir        = "logo"   // dark_logo.png / light_logo.png の置き場なのだ
	DefaultStyleRefDir    = "style_ref_images"
	DefaultSeedPrompt     = "a gas station with no people and no cars, not abandoned but quiet, golden hour light"
	DefaultContentPrompt  = "a wide establishing shot of a roadside scene"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	OpenAIAPIKey string
	ChatModel    string
	ImageModel   string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		OpenAIAPIKey: envutil.GetEnv("OPENAI_API_KEY", ""),
		ChatModel:    envutil.GetEnv("OPENAI_CHAT_MODEL", DefaultChatModel),
		ImageModel:   envutil.GetEnv("OPENAI_DIFFUSION_MODEL", DefaultImageModel),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// プロンプト関連
	SeedPrompt     string // --seed-prompt: 展開の元になるシードプロンプト
	ContentPrompt  string // --content-prompt: スタイル参照生成の内容プロンプト
	PromptCount    int    // --prompt-count
	ImageCount     int    // --image-count
	VariationCount int    // --variation-count

	// 画像サイズ・入出力関連
	Width       int    // --width
	Height      int    // --height
	ImageDir    string // --image-dir: 生成画像とログの保存先
	LogoDir     string // --logo-dir
	StyleRefDir string // --style-dir: 参照画像の置き場
	InputDir    string // --input-dir: compose コマンドが処理する既存画像の置き場

	// ロゴ合成の挙動設定
	Glow     bool // --glow: ロゴの背後に発光レイヤーを敷く
	FlatMode bool // --flat: サブフォルダを作らず ImageDir 直下に保存する
	KeepRaw  bool // --keep-raw: 中間の raw ファイルを残す

	// AI挙動設定
	ChatModel  string // --model: プロンプト展開・スタイル記述用のモデル
	ImageModel string // --image-model: 画像生成用のモデル

	// 実行制御
	RequestInterval time.Duration // --request-interval
	HTTPTimeout     time.Duration // --http-timeout
}
