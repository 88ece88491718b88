package parser

import (
	"regexp"
	"sort"
	"strconv"
)

// MainLayout 主工作簿的 sheet 布局
// Total / Integrated 可能为空串，表示该表缺失
type MainLayout struct {
	Total      string   // 累积贡献表
	Integrated string   // S1~S10 合并表
	Seasons    []string // 赛季表，按赛季号升序
}

// 赛季 sheet 名的数字后缀，如 "S3", "시즌 7", "S10 YXL_기여도"
var reSeasonNo = regexp.MustCompile(`(?i)(?:s|시즌)\s*0?(\d{1,2})`)

// RecognizeMainLayout 识别主工作簿布局
// 优先按位置取（第 1 表累计、第 2 表合并、3~12 表赛季），
// 赛季表名能按数字后缀匹配时以匹配结果为准，容忍 sheet 被改名或重排
func RecognizeMainLayout(sheetNames []string) MainLayout {
	layout := MainLayout{}
	if len(sheetNames) == 0 {
		return layout
	}

	layout.Total = sheetNames[0]
	if len(sheetNames) > 1 {
		layout.Integrated = sheetNames[1]
	}

	type seasonSheet struct {
		name string
		no   int
	}
	matched := make([]seasonSheet, 0, len(sheetNames))
	for i, name := range sheetNames {
		if i < 2 {
			// 前两张即使带数字也不当赛季表
			continue
		}
		if no, ok := SeasonNumber(name); ok {
			matched = append(matched, seasonSheet{name: name, no: no})
		}
	}

	if len(matched) > 0 {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].no < matched[j].no })
		layout.Seasons = make([]string, len(matched))
		for i, s := range matched {
			layout.Seasons[i] = s.name
		}
		return layout
	}

	// 无一匹配时退回位置取法
	if len(sheetNames) > 2 {
		end := len(sheetNames)
		if end > 12 {
			end = 12
		}
		layout.Seasons = append(layout.Seasons, sheetNames[2:end]...)
	}

	return layout
}

// SeasonNumber 从 sheet 名提取赛季号
func SeasonNumber(sheetName string) (int, bool) {
	m := reSeasonNo.FindStringSubmatch(sheetName)
	if len(m) != 2 {
		return 0, false
	}
	no, err := strconv.Atoi(m[1])
	if err != nil || no < 1 {
		return 0, false
	}
	return no, true
}
