package sink

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/go-diffusion-kit/pkg/asset"
)

// CleanupRaw は加工前の生画像 (*raw.png) をすべて削除します。
// 個別の削除失敗はログに残して続行します。
func (s *Sink) CleanupRaw() {
	s.removeGlob("*raw.png", nil)
}

// CleanupPNG はロゴ出力 (*_logo.png) を除くすべての PNG を削除します。
func (s *Sink) CleanupPNG() {
	s.removeGlob("*.png", asset.IsLogoFile)
}

// CleanupCSV は生成ログの CSV をすべて削除します。
func (s *Sink) CleanupCSV() {
	s.removeGlob("*.csv", nil)
}

// removeGlob はパターンに一致するファイルを削除します。skip が true を返した
// ファイルは保護されます。
func (s *Sink) removeGlob(pattern string, skip func(string) bool) {
	fullPattern := pattern
	if s.mode == ModeFolder {
		fullPattern = filepath.Join(s.imageDir, pattern)
	}

	matches, err := filepath.Glob(fullPattern)
	if err != nil {
		slog.Error("クリーンアップ対象の探索に失敗しました", "pattern", fullPattern, "error", err)
		return
	}

	for _, path := range matches {
		if skip != nil && skip(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			slog.Error("ファイルの削除に失敗しました", "path", path, "error", err)
		}
	}
}
