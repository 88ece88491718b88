package model

// 规范字段名，别名表解析后统一使用
const (
	FieldRank        = "rank"
	FieldName        = "name"
	FieldScore       = "score"
	FieldRole        = "role"
	FieldNote        = "note"
	FieldRefreshedAt = "refreshed_at"
)

// NormalizedRecord 规范化后的一行表格数据
// Name 为空的行在提取阶段就已丢弃
type NormalizedRecord struct {
	Rank   int                `json:"rank,omitempty"`   // 表内自带的序号列（可能缺失）
	Name   string             `json:"name"`             // 展示名，已去首尾空白
	Score  float64            `json:"score"`            // 数值无法解析时为 0
	Fields map[string]string  `json:"fields,omitempty"` // 其余文本字段（规范字段名 -> 原始文本）
	Values map[string]float64 `json:"values,omitempty"` // 其余数值字段
}

// DeltaKind 排名变动类型
type DeltaKind string

const (
	DeltaNew  DeltaKind = "new"  // 上期不存在
	DeltaUp   DeltaKind = "up"   // 排名上升
	DeltaDown DeltaKind = "down" // 排名下降
	DeltaSame DeltaKind = "same" // 排名不变
)

// RankDelta 排名变动，Steps 仅在 up/down 时 >= 1
type RankDelta struct {
	Kind  DeltaKind `json:"kind"`
	Steps int       `json:"steps,omitempty"`
}

// RankedEntity 参与排名后的记录
type RankedEntity struct {
	NormalizedRecord
	ComputedRank int       `json:"computedRank"` // 按分数降序的 1 起始名次
	Delta        RankDelta `json:"delta"`
}
