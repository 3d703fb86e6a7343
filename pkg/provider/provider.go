package provider

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// スタイル記述キャッシュの既定値です。同じ参照画像セットに対する
// 重い Vision 呼び出しを繰り返さないようにします。
const (
	styleCacheExpiration = 30 * time.Minute
	styleCacheCleanup    = 1 * time.Hour
)

// Config はプロバイダ構築に必要な設定です。
type Config struct {
	APIKey          string
	ChatModel       string        // チャット補完用モデル
	ImageModel      string        // 画像生成用モデル
	RequestInterval time.Duration // API呼び出しの最小間隔。0で無制限
	HTTPTimeout     time.Duration // 画像URLダウンロードのタイムアウト
}

// Client は画像生成・チャット補完の外部APIへの窓口です。
// レート制限とスタイル記述のキャッシュを内部に持ちます。
type Client struct {
	api        *openai.Client
	chatModel  string
	imageModel string
	limiter    *rate.Limiter
	styleCache *cache.Cache
	httpClient *http.Client
}

// New は Client を構築します。APIキーは必須です。
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("provider: APIキーが設定されていません")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestInterval > 0 {
		// Burst 2 により、開始直後は2件まで待ちなしでリクエストできるのだ
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 2)
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		api:        openai.NewClient(cfg.APIKey),
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		limiter:    limiter,
		styleCache: cache.New(styleCacheExpiration, styleCacheCleanup),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// wrapAPIError はプロバイダ起因の失敗を一貫した形で包みます。
func wrapAPIError(op string, err error) error {
	return fmt.Errorf("provider: %s に失敗しました: %w", op, err)
}
