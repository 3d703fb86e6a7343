package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/pkg/domain"
	"github.com/shouni/go-diffusion-kit/pkg/sink"
)

// VariationProvider は、バリエーション生成に必要なAIクライアントの操作を抽象化する。
type VariationProvider interface {
	Variations(ctx context.Context, referencePath string, count int, size domain.Size) ([]domain.Variation, error)
}

// VariationRunner は、参照フォルダ内の各画像からバリエーションを生成する実体。
type VariationRunner struct {
	provider VariationProvider
	out      *sink.Sink
	opts     config.GenerateOptions
}

// NewVariationRunner は、VariationRunnerの新しいインスタンスを生成して返す。
func NewVariationRunner(p VariationProvider, out *sink.Sink, opts config.GenerateOptions) *VariationRunner {
	return &VariationRunner{
		provider: p,
		out:      out,
		opts:     opts,
	}
}

// Run は参照画像ごとにバリエーション生成を実行するのだ。
// APIの入力制約（PNG・サイズ上限）に合わせて、参照画像は事前に最適化するのだ。
func (r *VariationRunner) Run(ctx context.Context) error {
	refs, err := sink.ImageFilePaths(r.opts.StyleRefDir)
	if err != nil {
		return fmt.Errorf("参照フォルダ '%s' の探索に失敗したのだ: %w", r.opts.StyleRefDir, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("参照フォルダ '%s' に画像がないのだ", r.opts.StyleRefDir)
	}

	size := domain.Size{Width: r.opts.Width, Height: r.opts.Height}
	slog.Info("バリエーション生成を開始するのだ", "references", len(refs), "count", r.opts.VariationCount)

	saved := 0
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		optimized, err := sink.OptimizePNG(ref, sink.DefaultMaxPNGBytes)
		if err != nil {
			slog.Error("参照画像の最適化に失敗したためスキップするのだ", "path", ref, "error", err)
			continue
		}

		variations, err := r.provider.Variations(ctx, optimized, r.opts.VariationCount, size)
		if err != nil {
			slog.Error("バリエーション生成に失敗したためスキップするのだ", "path", optimized, "error", err)
			continue
		}

		for _, v := range variations {
			path, err := r.out.Save(v.Data, v.VariationName)
			if err != nil {
				slog.Error("バリエーションの保存に失敗したのだ", "name", v.VariationName, "error", err)
				continue
			}
			slog.Info("バリエーションを保存したのだ", "original", v.OriginalName, "path", path)
			saved++
		}
	}

	slog.Info("バリエーション生成が完了したのだ", "saved", saved)
	return nil
}
