package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/pkg/compose"
	"github.com/shouni/go-diffusion-kit/pkg/domain"
	"github.com/shouni/go-diffusion-kit/pkg/sink"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DiffusionProvider は、バッチ生成に必要なAIクライアントの操作を抽象化する。
// テストではモック実装を注入できるのだ。
type DiffusionProvider interface {
	GeneratePrompts(ctx context.Context, seedPrompt string, count int) ([]string, error)
	GenerateImage(ctx context.Context, promptText string, size domain.Size) (*domain.GeneratedImage, error)
}

// DiffusionRunner は、シードプロンプトから画像の一括生成を実行するためのインターフェース。
type DiffusionRunner interface {
	// Run はプロンプト展開と画像生成・ロゴ合成・保存を一括実行する。
	Run(ctx context.Context) error
}

// BatchDiffusionRunner は、流量制限を守りながら並列で画像生成を行う実体。
type BatchDiffusionRunner struct {
	provider   DiffusionProvider      // 画像生成AI（OpenAI）へのクライアント
	out        *sink.Sink             // 生成物の保存先とCSVログ
	compositor *compose.Compositor    // 背景の明るさに応じたロゴ合成器
	opts       config.GenerateOptions // 実行時パラメータ一式
}

// NewBatchDiffusionRunner は、BatchDiffusionRunnerの新しいインスタンスを生成して返す。
func NewBatchDiffusionRunner(p DiffusionProvider, out *sink.Sink, compositor *compose.Compositor, opts config.GenerateOptions) *BatchDiffusionRunner {
	return &BatchDiffusionRunner{
		provider:   p,
		out:        out,
		compositor: compositor,
		opts:       opts,
	}
}

// Run は並列処理を用いて、各プロンプトの画像を生成するメインロジックなのだ。
func (r *BatchDiffusionRunner) Run(ctx context.Context) error {
	prompts, err := r.provider.GeneratePrompts(ctx, r.opts.SeedPrompt, r.opts.PromptCount)
	if err != nil {
		return fmt.Errorf("プロンプト展開に失敗したのだ: %w", err)
	}

	size := domain.Size{Width: r.opts.Width, Height: r.opts.Height}
	interval := r.opts.RequestInterval
	if interval <= 0 {
		interval = config.DefaultRateLimit
	}

	eg, egCtx := errgroup.WithContext(ctx)

	// 設定された間隔で、レートリミット（流量制限）をかけるのだ
	// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ
	limiter := rate.NewLimiter(rate.Every(interval), 2)
	slog.Info("並列画像生成を開始するのだ", "count", len(prompts), "interval", interval)

	for i, promptText := range prompts {
		i, promptText := i, promptText // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			// 2. 生成から保存までを1件分実行するのだ
			// 1件の失敗でバッチ全体は止めず、ログに残してスキップするのだ
			if err := r.processPrompt(egCtx, promptText, size, i); err != nil {
				slog.Error("画像の生成に失敗したためスキップするのだ", "prompt", i+1, "error", err)
			}
			return nil
		})
	}

	// すべての並列処理が完了するのを待つのだ
	if err := eg.Wait(); err != nil {
		return err
	}

	// 中間ファイルの掃除。--keep-raw 指定時はデバッグ用に残すのだ
	if !r.opts.KeepRaw {
		r.out.CleanupRaw()
	}

	slog.Info("バッチ生成が完了したのだ", "total", len(prompts))
	return nil
}

// processPrompt は1プロンプト分の生成・フィット・ロゴ合成・保存・記録を行うのだ。
func (r *BatchDiffusionRunner) processPrompt(ctx context.Context, promptText string, size domain.Size, idx int) error {
	genStart := time.Now()
	img, err := r.provider.GenerateImage(ctx, promptText, size)
	if err != nil {
		return err
	}
	genSeconds := time.Since(genStart).Seconds()

	// 壊れたペイロードをディスクに書く前に弾くのだ
	if _, err := compose.Decode(img.Data); err != nil {
		return err
	}

	manipStart := time.Now()
	rawPath, err := r.out.SaveRaw(img.Data, promptText, idx)
	if err != nil {
		return err
	}

	// APIのサポート寸法と要求寸法のズレを中央クロップで吸収するのだ
	fitted, err := sink.FitCrop(rawPath, size.Width, size.Height)
	if err != nil {
		return err
	}

	composed, result := r.compositor.Apply(fitted)
	if result.Applied {
		slog.Info("ロゴを合成したのだ",
			"prompt", idx+1,
			"classification", result.Classification,
			"asset", result.Asset)
	} else {
		slog.Warn("ロゴ合成をスキップして元画像のまま保存するのだ", "prompt", idx+1, "error", result.Err)
	}

	filename := fmt.Sprintf("%s_%s.png", sink.SanitizeFilename(promptText), size.String())
	finalPath, err := r.out.SaveImage(composed, filename)
	if err != nil {
		return err
	}
	manipSeconds := time.Since(manipStart).Seconds()

	if err := r.out.LogGeneration(promptText, size, filepath.Base(finalPath), genSeconds, manipSeconds); err != nil {
		slog.Warn("CSVログの追記に失敗したのだ", "error", err)
	}

	slog.Info("画像を保存したのだ", "prompt", idx+1, "path", finalPath)
	return nil
}
