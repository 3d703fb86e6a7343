package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
	"github.com/shouni/go-diffusion-kit/pkg/compose"
	"github.com/shouni/go-diffusion-kit/pkg/sink"
)

// LogoComposeRunner は、既存フォルダ内の画像へロゴを一括合成する実体。
// API呼び出しを伴わないため、オフラインでも実行できるのだ。
type LogoComposeRunner struct {
	compositor *compose.Compositor
	inputDir   string
}

// NewLogoComposeRunner は、LogoComposeRunnerの新しいインスタンスを生成して返す。
func NewLogoComposeRunner(compositor *compose.Compositor, inputDir string) *LogoComposeRunner {
	return &LogoComposeRunner{
		compositor: compositor,
		inputDir:   inputDir,
	}
}

// Run はフォルダ内の全画像を順に処理するのだ。
// 個々の失敗はログに残してスキップし、処理は最後まで続けるのだ。
func (r *LogoComposeRunner) Run(ctx context.Context) error {
	paths, err := sink.ImageFilePaths(r.inputDir)
	if err != nil {
		return fmt.Errorf("フォルダ '%s' の探索に失敗したのだ: %w", r.inputDir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("フォルダ '%s' に処理対象の画像がないのだ", r.inputDir)
	}

	slog.Info("ロゴ一括合成を開始するのだ", "folder", r.inputDir, "count", len(paths))

	applied, skipped := 0, 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		// 合成済みの成果物を二重処理しないのだ
		if asset.IsLogoFile(path) {
			continue
		}

		img, err := imaging.Open(path)
		if err != nil {
			slog.Error("画像の読み込みに失敗したためスキップするのだ", "path", path, "error", err)
			skipped++
			continue
		}

		composed, result := r.compositor.Apply(img)
		if !result.Applied {
			slog.Warn("ロゴ合成をスキップしたのだ", "path", path, "error", result.Err)
			skipped++
			continue
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_logo.png"
		outPath, err := asset.ResolveOutputPath(r.inputDir, base)
		if err != nil {
			slog.Error("出力パスの解決に失敗したのだ", "path", path, "error", err)
			skipped++
			continue
		}

		if err := imaging.Save(composed, outPath); err != nil {
			slog.Error("合成結果の保存に失敗したのだ", "path", outPath, "error", err)
			skipped++
			continue
		}

		slog.Info("ロゴを合成したのだ",
			"input", path,
			"output", outPath,
			"classification", result.Classification)
		applied++
	}

	slog.Info("ロゴ一括合成が完了したのだ", "applied", applied, "skipped", skipped)
	return nil
}
