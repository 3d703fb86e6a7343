package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shouni/go-diffusion-kit/pkg/domain"
)

// csvHeader は生成ログのヘッダ行です。
var csvHeader = []string{"Prompt", "Width", "Height", "Filename", "Image gen time", "Image manip time"}

// LogGeneration は1件の生成結果を CSV ログに追記します。
// ヘッダ行はファイルが新規のときだけ書き込みます。追記のたびにヘッダを
// 重複出力してはいけません。
func (s *Sink) LogGeneration(prompt string, size domain.Size, filename string, genSeconds, manipSeconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.csvPath)
	fileExists := statErr == nil

	f, err := os.OpenFile(s.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("CSVログを開けませんでした: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if !fileExists {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("CSVヘッダの書き込みに失敗しました: %w", err)
		}
	}

	row := []string{
		prompt,
		strconv.Itoa(size.Width),
		strconv.Itoa(size.Height),
		filename,
		strconv.FormatFloat(genSeconds, 'f', -1, 64),
		strconv.FormatFloat(manipSeconds, 'f', -1, 64),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("CSV行の書き込みに失敗しました: %w", err)
	}

	w.Flush()
	return w.Error()
}
