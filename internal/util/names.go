package util

import (
	"regexp"
	"strings"
)

// 名字里常见的装饰符号（♥、♡ 等），比较前必须剥掉
var reDecoration = regexp.MustCompile(`[♥♡★☆]`)

var reSpaces = regexp.MustCompile(`\s+`)

// StripDecorations 去除装饰符号并修剪首尾空白
// 用于构造对外检索关键词，保留原有大小写
func StripDecorations(s string) string {
	return strings.TrimSpace(reDecoration.ReplaceAllString(s, ""))
}

// NormalizeName 将展示名归一为可比较的 key
// 去装饰符号、压缩空白、小写化，所有名字查表都走这里
func NormalizeName(s string) string {
	s = reDecoration.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
