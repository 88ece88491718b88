package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yxlinfo/yxl-info/internal/util"
)

var (
	// 表头里嵌的括号后缀，如 "스트리머(11.5)" 的日期标注
	reParenSuffix = regexp.MustCompile(`（[^）]*）|\([^)]*\)`)
	reAllSpaces   = regexp.MustCompile(`\s+`)
)

// NormalizeHeader 规范化表头 key
// 去装饰符号、去括号后缀、去全部空白、小写化
// 比名字归一更激进：表头匹配只看文字本身
func NormalizeHeader(h string) string {
	h = util.StripDecorations(h)
	h = reParenSuffix.ReplaceAllString(h, "")
	h = strings.ReplaceAll(h, "\n", "")
	h = strings.ReplaceAll(h, "\r", "")
	h = strings.ReplaceAll(h, "\t", "")
	h = reAllSpaces.ReplaceAllString(h, "")
	return strings.ToLower(h)
}

// ParseNumber 数值单元格解析
// 去千分位分隔符与首尾空白，解析失败一律记 0
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// ParseRank 序号单元格解析，非正整数记 0（视为缺失）
func ParseRank(s string) int {
	n := int(ParseNumber(s))
	if n < 1 {
		return 0
	}
	return n
}

// excel 序列日期的纪元（1900 日期系统，含闰年 bug 偏移）
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// 새로고침시간 列可能出现的文本格式
var sheetTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
}

// ParseSheetTime 解析表内时间单元格
// 既接受 excel 序列数，也接受常见文本格式
func ParseSheetTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
		return t, true
	}

	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
