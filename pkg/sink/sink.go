package sink

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// Mode は保存先の決定戦略です。呼び出し箇所ごとの場当たりな分岐を避けるため、
// 構築時に一度だけ指定します。
type Mode int

const (
	// ModeFolder は画像ディレクトリ配下に保存します（通常運用）。
	ModeFolder Mode = iota
	// ModeFlat はカレントディレクトリに直接保存します（ノートブック等の制約環境向け）。
	ModeFlat
)

// Clock は現在時刻の取得を抽象化します。テストでは固定時刻を注入できます。
type Clock interface {
	Now() time.Time
}

// SystemClock は time.Now をそのまま使う標準実装です。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// timestampLayout はファイル名の先頭に付与するソート可能なタイムスタンプ形式です。
const timestampLayout = "20060102_150405"

// sanitizeRegex はファイル名として安全でない文字に一致します。
var sanitizeRegex = regexp.MustCompile(`[^\w\-.]`)

// maxFilenameLen はサニタイズ後のプロンプト部分の最大長です。
const maxFilenameLen = 96

// Sink は生成物のローカル永続化と生成ログの追記を担います。
// 複数ゴルーチンからの利用を想定し、ログ追記は内部で直列化します。
type Sink struct {
	mode     Mode
	imageDir string
	csvPath  string
	clock    Clock

	mu sync.Mutex // CSV 追記の直列化
}

// New は Sink を構築します。clock に nil を渡すとシステム時計を使います。
// CSV ログのファイル名は構築時刻で一度だけ決まります。
func New(imageDir string, mode Mode, clock Clock) (*Sink, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	s := &Sink{
		mode:     mode,
		imageDir: imageDir,
		clock:    clock,
	}

	csvName := fmt.Sprintf("image_log_%s.csv", clock.Now().Format(timestampLayout))
	if mode == ModeFolder {
		if err := os.MkdirAll(imageDir, 0o755); err != nil {
			return nil, fmt.Errorf("画像ディレクトリの作成に失敗しました: %w", err)
		}
		s.csvPath = filepath.Join(imageDir, csvName)
	} else {
		s.csvPath = csvName
	}

	return s, nil
}

// SanitizeFilename は任意の文字列をファイル名として安全なトークンに変換します。
// 英数・ハイフン・ドット以外を '_' に置換し、最大96文字に切り詰めます。
func SanitizeFilename(text string) string {
	sanitized := strings.TrimSpace(sanitizeRegex.ReplaceAllString(text, "_"))
	runes := []rune(sanitized)
	if len(runes) > maxFilenameLen {
		runes = runes[:maxFilenameLen]
	}
	return string(runes)
}

// timestamp は現在時刻のタイムスタンプ文字列を返します。
func (s *Sink) timestamp() string {
	return s.clock.Now().Format(timestampLayout)
}

// resolve は Mode に従ってファイル名を保存パスに解決します。
func (s *Sink) resolve(name string) string {
	if s.mode == ModeFolder {
		return filepath.Join(s.imageDir, name)
	}
	return name
}

// SaveRaw は加工前の生画像を保存し、保存先パスを返します。
// ファイル名は {timestamp}_{sanitized prompt}_{idx+1}_raw.png です。
func (s *Sink) SaveRaw(data []byte, prompt string, idx int) (string, error) {
	name := fmt.Sprintf("%s_%s_%d_raw.png", s.timestamp(), SanitizeFilename(prompt), idx+1)
	path := s.resolve(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("生画像の保存に失敗しました: %w", err)
	}
	return path, nil
}

// Save はエンコード済みバイト列をタイムスタンプ付きファイル名で保存します。
func (s *Sink) Save(data []byte, filename string) (string, error) {
	path := s.resolve(fmt.Sprintf("%s_%s", s.timestamp(), filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}
	return path, nil
}

// SaveImage はデコード済み画像をタイムスタンプ付きファイル名で保存します。
// エンコード形式は filename の拡張子から決まります。
func (s *Sink) SaveImage(img image.Image, filename string) (string, error) {
	path := s.resolve(fmt.Sprintf("%s_%s", s.timestamp(), filename))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("画像のエンコード保存に失敗しました: %w", err)
	}
	return path, nil
}

// SaveText はプロンプトの記録などのテキスト成果物を保存します。
func (s *Sink) SaveText(content, filename string) (string, error) {
	path := s.resolve(fmt.Sprintf("%s_%s", s.timestamp(), filename))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("テキストの保存に失敗しました: %w", err)
	}
	return path, nil
}

// ImageDir は画像の保存先ディレクトリを返します。ModeFlat の場合は "." です。
func (s *Sink) ImageDir() string {
	if s.mode == ModeFolder {
		return s.imageDir
	}
	return "."
}

// CSVPath は生成ログのパスを返します。
func (s *Sink) CSVPath() string {
	return s.csvPath
}

// ImageFilePaths は指定フォルダ内の画像ファイルのパス一覧をソート済みで返します。
func ImageFilePaths(folder string) ([]string, error) {
	patterns := []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp"}

	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(folder, p))
		if err != nil {
			return nil, fmt.Errorf("画像ファイルの探索に失敗しました: %w", err)
		}
		paths = append(paths, matches...)
	}

	sort.Strings(paths)
	return paths, nil
}
