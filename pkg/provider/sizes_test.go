package provider

import (
	"testing"

	"github.com/shouni/go-diffusion-kit/pkg/domain"
)

func TestClosestSupportedSize(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		want          domain.Size
	}{
		{"サポート寸法そのもの", 1024, 1792, domain.Size{Width: 1024, Height: 1792}},
		{"正方形に近い要求", 1000, 1000, domain.Size{Width: 1024, Height: 1024}},
		{"縦長に近い要求", 900, 1600, domain.Size{Width: 1024, Height: 1792}},
		{"横長に近い要求", 1920, 1080, domain.Size{Width: 1792, Height: 1024}},
		{"極端に小さい要求", 10, 10, domain.Size{Width: 1024, Height: 1024}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClosestSupportedSize(c.width, c.height); got != c.want {
				t.Errorf("期待値 %s, 実際の値 %s", c.want.String(), got.String())
			}
		})
	}
}

func TestSizeString(t *testing.T) {
	s := domain.Size{Width: 1024, Height: 1792}
	if got := s.String(); got != "1024x1792" {
		t.Errorf("期待値 1024x1792, 実際の値 %s", got)
	}
}
