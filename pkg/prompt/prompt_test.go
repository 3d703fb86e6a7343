package prompt

import (
	"strings"
	"testing"
)

func TestBuildExpansionPrompt(t *testing.T) {
	seed := "a gas station with no people or cars"
	got := BuildExpansionPrompt(seed)

	if !strings.Contains(got, seed) {
		t.Error("シードプロンプトが含まれていません")
	}
	if !strings.Contains(got, "not have any text or words") {
		t.Error("文字なし指定の指示が含まれていません")
	}
}

func TestBuildMergePrompt(t *testing.T) {
	descs := []string{"warm lighting", "film grain"}
	got := BuildMergePrompt(descs)

	for _, d := range descs {
		if !strings.Contains(got, d) {
			t.Errorf("スタイル記述 %q が含まれていません", d)
		}
	}
}

func TestBuildCombinePrompt(t *testing.T) {
	got := BuildCombinePrompt("a shopper at a checkout line", "muted pastel palette")

	if !strings.Contains(got, "a shopper at a checkout line") {
		t.Error("内容プロンプトが含まれていません")
	}
	if !strings.Contains(got, "muted pastel palette") {
		t.Error("スタイル記述が含まれていません")
	}
	if !strings.Contains(got, "No text is allowed in the image") {
		t.Error("文字なし制約が含まれていません")
	}
}
