package domain

import "strconv"

// Size は画像の寸法（幅・高さ）を保持します。
type Size struct {
	Width  int
	Height int
}

// String は "1024x1792" 形式の文字列を返します。API の size パラメータに直結します。
func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// GeneratedImage は生成された画像データとそのメタデータです。
type GeneratedImage struct {
	Prompt        string // 生成に使用したプロンプト
	RevisedPrompt string // プロバイダ側で書き換えられたプロンプト（空の場合あり）
	Data          []byte
	MimeType      string
}

// Variation は参照画像から生成されたバリエーションの成果物です。
type Variation struct {
	OriginalName  string // 参照元のファイル名
	VariationName string // バリエーション用に採番されたファイル名
	Data          []byte
}
