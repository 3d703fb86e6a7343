package asset

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultLogoDir はロゴアセットを格納するデフォルトのディレクトリ名です。
	DefaultLogoDir = "logo"
	// ReferenceLogoName はサンプリング領域の寸法決定に使う参照ロゴの論理名です。
	ReferenceLogoName = "medium_logo"
	// LogoExt はロゴアセットの拡張子です。透過が必要なため PNG 固定です。
	LogoExt = ".png"
)

// RawFileRegex は生画像 (20240101_120000_prompt_1_raw.png 等) に一致します
var RawFileRegex = regexp.MustCompile(`raw\.png$`)

// Store はロゴアセットのディレクトリを束ね、論理名から画像を引き当てます。
type Store struct {
	dir string
}

// NewStore は指定ディレクトリを参照する Store を生成します。
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir はアセットディレクトリのパスを返します。
func (s *Store) Dir() string {
	return s.dir
}

// Path は論理名（拡張子なし）からアセットのフルパスを組み立てます。
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+LogoExt)
}

// Logo は論理名に対応するロゴ画像を読み込みます。
// ファイルが存在しない・読めない場合はエラーを返し、フォールバックは行いません。
func (s *Store) Logo(name string) (image.Image, error) {
	path := s.Path(name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ロゴアセット '%s' が見つかりません: %w", path, err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ロゴアセット '%s' の読み込みに失敗しました: %w", path, err)
	}
	return img, nil
}

// Reference はサンプリング領域の寸法決定に使う参照ロゴを読み込みます。
func (s *Store) Reference() (image.Image, error) {
	return s.Logo(ReferenceLogoName)
}

// IsLogoFile は、クリーンアップ時に保護すべきロゴ出力 (*_logo.png) かどうかを判定します。
func IsLogoFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "_logo"+LogoExt)
}

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// リモート/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "images/variation.png", 2 -> "images/variation_2.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}
