package util_test

import (
	"testing"

	"github.com/yxlinfo/yxl-info/internal/util"
)

// TestStripDecorations 去装饰符号，保留大小写
func TestStripDecorations(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"은우♥", "은우"},
		{"♡쩔밍♡", "쩔밍"},
		{"★멤버☆", "멤버"},
		{" 은우 ", "은우"},
		{"EunWoo", "EunWoo"},
		{"♥♡", ""},
	}

	for _, c := range cases {
		if got := util.StripDecorations(c.in); got != c.want {
			t.Errorf("StripDecorations(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestNormalizeName 比较用归一：装饰、空白、大小写全部无关
func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"은우♥", "은우"},
		{"  은우  ", "은우"},
		{"Eun Woo", "eun woo"},
		{"Eun   Woo", "eun woo"},
		{"EUNWOO", "eunwoo"},
		{"♥♡", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := util.NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// 同一个人的不同写法归一到同一个 key
	if util.NormalizeName("은우♥") != util.NormalizeName(" 은우 ") {
		t.Error("decorated and padded spellings should share one key")
	}
}
