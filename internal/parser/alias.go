package parser

import "github.com/yxlinfo/yxl-info/internal/model"

// FieldSpec 单个规范字段的别名定义
// Aliases 按优先级排列，先精确匹配整轮，再包含匹配整轮
type FieldSpec struct {
	Canonical string   // 规范字段名
	Numeric   bool     // 数值字段：解析失败记 0；文本字段保留原文
	Aliases   []string // 源表头的可接受写法
}

// AliasTable 一张表的字段别名映射
type AliasTable []FieldSpec

// TotalAliases 累积贡献表（主工作簿第 1 个 sheet）
var TotalAliases = AliasTable{
	{Canonical: model.FieldRank, Numeric: true, Aliases: []string{"순위", "랭킹"}},
	{Canonical: model.FieldName, Aliases: []string{"스트리머", "비제이명", "닉네임"}},
	{Canonical: model.FieldScore, Numeric: true, Aliases: []string{"누적기여도", "기여도"}},
	{Canonical: model.FieldNote, Aliases: []string{"비고", "메모"}},
}

// SeasonAliases 赛季贡献表（主工作簿第 3 个起的 sheet）
var SeasonAliases = AliasTable{
	{Canonical: model.FieldRank, Numeric: true, Aliases: []string{"순위", "랭킹"}},
	{Canonical: model.FieldName, Aliases: []string{"스트리머", "비제이명", "닉네임"}},
	{Canonical: model.FieldScore, Numeric: true, Aliases: []string{"YXL_기여도", "기여도", "점수"}},
	{Canonical: model.FieldRole, Aliases: []string{"역할", "멤버"}},
}

// SynergyAliases 시너지표（独立工作簿，单 sheet）
var SynergyAliases = AliasTable{
	{Canonical: model.FieldRank, Numeric: true, Aliases: []string{"순위", "랭킹"}},
	{Canonical: model.FieldName, Aliases: []string{"비제이명", "스트리머", "닉네임"}},
	{Canonical: model.FieldScore, Numeric: true, Aliases: []string{"월별 누적별풍선", "누적별풍선", "별풍선"}},
	{Canonical: model.FieldRefreshedAt, Aliases: []string{"새로고침시간", "갱신시간"}},
}
