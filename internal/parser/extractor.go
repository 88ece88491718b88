package parser

import (
	"strings"

	"github.com/yxlinfo/yxl-info/internal/model"
)

// Extract 把原始表格（首行表头 + 数据行）提取为规范化记录
// 纯函数：同样的输入总是产出同样的序列；坏表返回空序列而不是错误，
// 让调用方可以继续处理其余 sheet
func Extract(grid [][]string, aliases AliasTable) []model.NormalizedRecord {
	if len(grid) == 0 {
		return []model.NormalizedRecord{}
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = NormalizeHeader(h)
	}

	cols := resolveColumns(headers, aliases)
	if _, ok := cols[model.FieldName]; !ok {
		// 连名字列都认不出来，整张表按缺失处理
		return []model.NormalizedRecord{}
	}

	records := make([]model.NormalizedRecord, 0, len(grid)-1)
	for _, row := range grid[1:] {
		if isBlankRow(row) {
			continue
		}

		rec, ok := buildRecord(row, cols, aliases)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records
}

// resolveColumns 按别名表解析每个规范字段的源列
// 先整轮精确匹配，再整轮包含匹配，首个命中即定；未命中的字段缺失，不报错
func resolveColumns(headers []string, aliases AliasTable) map[string]int {
	cols := make(map[string]int, len(aliases))

	for _, spec := range aliases {
		idx := -1
		for _, alias := range spec.Aliases {
			key := NormalizeHeader(alias)
			if idx = findExactHeader(headers, key); idx >= 0 {
				break
			}
		}
		if idx < 0 {
			for _, alias := range spec.Aliases {
				key := NormalizeHeader(alias)
				if idx = findContainsHeader(headers, key); idx >= 0 {
					break
				}
			}
		}
		if idx >= 0 {
			cols[spec.Canonical] = idx
		}
	}

	return cols
}

func findExactHeader(headers []string, key string) int {
	for i, h := range headers {
		if h == key {
			return i
		}
	}
	return -1
}

func findContainsHeader(headers []string, key string) int {
	if key == "" {
		return -1
	}
	for i, h := range headers {
		if strings.Contains(h, key) {
			return i
		}
	}
	return -1
}

func buildRecord(row []string, cols map[string]int, aliases AliasTable) (model.NormalizedRecord, bool) {
	rec := model.NormalizedRecord{}

	name := strings.TrimSpace(cell(row, cols[model.FieldName]))
	if name == "" {
		return rec, false
	}
	rec.Name = name

	for _, spec := range aliases {
		idx, ok := cols[spec.Canonical]
		if !ok {
			continue
		}
		raw := strings.TrimSpace(cell(row, idx))

		switch spec.Canonical {
		case model.FieldName:
			// 已处理
		case model.FieldRank:
			rec.Rank = ParseRank(raw)
		case model.FieldScore:
			rec.Score = ParseNumber(raw)
		default:
			if spec.Numeric {
				if rec.Values == nil {
					rec.Values = make(map[string]float64)
				}
				rec.Values[spec.Canonical] = ParseNumber(raw)
			} else if raw != "" {
				if rec.Fields == nil {
					rec.Fields = make(map[string]string)
				}
				rec.Fields[spec.Canonical] = raw
			}
		}
	}

	return rec, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
