package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-diffusion-kit/internal/config"
	"github.com/shouni/go-diffusion-kit/pkg/domain"
	"github.com/shouni/go-diffusion-kit/pkg/provider"
	"github.com/shouni/go-diffusion-kit/pkg/sink"
)

// StyleProvider は、スタイル参照付き生成に必要なAIクライアントの操作を抽象化する。
type StyleProvider interface {
	GenerateWithStyleReferences(ctx context.Context, imagePaths []string, contentPrompt string, size domain.Size, count int) (*provider.StyleGeneration, error)
}

// StyleRunner は、参照画像群のスタイルを反映した画像生成を行う実体。
type StyleRunner struct {
	provider StyleProvider
	out      *sink.Sink
	opts     config.GenerateOptions
}

// NewStyleRunner は、StyleRunnerの新しいインスタンスを生成して返す。
func NewStyleRunner(p StyleProvider, out *sink.Sink, opts config.GenerateOptions) *StyleRunner {
	return &StyleRunner{
		provider: p,
		out:      out,
		opts:     opts,
	}
}

// Run は参照画像のスタイル記述・プロンプト合成・画像生成を一括実行するのだ。
// 検証用に、スタイル記述と合成プロンプトの記録もテキストで残すのだ。
func (r *StyleRunner) Run(ctx context.Context) error {
	paths, err := sink.ImageFilePaths(r.opts.StyleRefDir)
	if err != nil {
		return fmt.Errorf("参照フォルダ '%s' の探索に失敗したのだ: %w", r.opts.StyleRefDir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("参照フォルダ '%s' に画像がないのだ", r.opts.StyleRefDir)
	}

	size := domain.Size{Width: r.opts.Width, Height: r.opts.Height}
	slog.Info("スタイル参照生成を開始するのだ",
		"references", len(paths),
		"count", r.opts.ImageCount,
		"content_prompt", r.opts.ContentPrompt)

	gen, err := r.provider.GenerateWithStyleReferences(ctx, paths, r.opts.ContentPrompt, size, r.opts.ImageCount)
	if err != nil {
		return fmt.Errorf("スタイル参照生成に失敗したのだ: %w", err)
	}

	for i, img := range gen.Images {
		path, err := r.out.SaveRaw(img.Data, r.opts.ContentPrompt, i)
		if err != nil {
			slog.Error("画像の保存に失敗したのだ", "index", i+1, "error", err)
			continue
		}
		slog.Info("スタイル参照画像を保存したのだ", "index", i+1, "path", path)
	}

	if path, err := r.out.SaveText(buildTranscript(r.opts.ContentPrompt, gen), "style_session.txt"); err != nil {
		slog.Warn("生成記録の保存に失敗したのだ", "error", err)
	} else {
		slog.Info("生成記録を保存したのだ", "path", path)
	}

	return nil
}

// buildTranscript はスタイル生成セッションの記録テキストを組み立てるのだ。
func buildTranscript(contentPrompt string, gen *provider.StyleGeneration) string {
	var b strings.Builder
	b.WriteString("Content prompt:\n" + contentPrompt + "\n\n")
	b.WriteString("Style description:\n" + gen.StyleDescription + "\n\n")
	b.WriteString("Combined prompt:\n" + gen.CombinedPrompt + "\n")

	for i, img := range gen.Images {
		if img.RevisedPrompt == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("\nRevised prompt %d:\n%s\n", i+1, img.RevisedPrompt))
	}
	return b.String()
}
