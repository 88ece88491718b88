package model

import "time"

// IdentityRecord SOOP 账号解析结果，持久化在 KV 存储里做读穿缓存
type IdentityRecord struct {
	UserID      string    `json:"user_id"`      // SOOP 稳定标识
	UserNick    string    `json:"user_nick"`    // 搜索命中的昵称
	StationLogo string    `json:"station_logo"` // 频道头像
	ResolvedAt  time.Time `json:"resolved_at"`  // 解析时间，用于 TTL 判断
}

// LiveStatus 直播状态，仅在一次补充过程中短暂缓存，不跨进程持久化
type LiveStatus struct {
	UserID    string `json:"user_id"`
	IsLive    bool   `json:"isLive"`
	BroadNo   string `json:"broadNo,omitempty"`   // 场次号，非空即视为在播
	Thumbnail string `json:"thumbnail,omitempty"` // 在播时的直播缩略图
	Title     string `json:"title,omitempty"`
	URL       string `json:"url,omitempty"` // 在播取直播间地址，离线取频道主页
}

// EnrichedEntity 附加直播状态后的排名记录
// Live 为 nil 表示状态未知（解析或查询失败），按离线处理
type EnrichedEntity struct {
	RankedEntity
	Live *LiveStatus `json:"live,omitempty"`
}
