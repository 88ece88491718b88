package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/util"
)

// RankingResponse 排名响应
type RankingResponse struct {
	UpdatedAt   time.Time `json:"updatedAt"`   // 源表自带的数据时间
	RefreshedAt time.Time `json:"refreshedAt"` // 服务端最近一次刷新时间
	Entries     any       `json:"entries"`
}

// GetTotalRanking 获取累计贡献排名
// GET /api/rankings/total
func (h *Handler) GetTotalRanking(c *gin.Context) {
	result := h.svc.Latest()
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data loaded yet"})
		return
	}

	entries := result.Total
	if q := c.Query("q"); q != "" {
		entries = filterRanked(entries, q)
	}

	c.JSON(http.StatusOK, RankingResponse{
		UpdatedAt:   result.UpdatedAt,
		RefreshedAt: result.RefreshedAt,
		Entries:     entries,
	})
}

// GetSynergyRanking 获取시너지표排名（含直播状态）
// GET /api/rankings/synergy
func (h *Handler) GetSynergyRanking(c *gin.Context) {
	result := h.svc.Latest()
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data loaded yet"})
		return
	}

	entries := result.Synergy
	if q := c.Query("q"); q != "" {
		entries = filterEnriched(entries, q)
	}

	c.JSON(http.StatusOK, RankingResponse{
		UpdatedAt:   result.UpdatedAt,
		RefreshedAt: result.RefreshedAt,
		Entries:     entries,
	})
}

// filterRanked 按归一名模糊过滤
func filterRanked(entries []model.RankedEntity, q string) []model.RankedEntity {
	key := util.NormalizeName(q)
	if key == "" {
		return entries
	}
	out := make([]model.RankedEntity, 0, len(entries))
	for _, e := range entries {
		if nameMatches(e.Name, key) {
			out = append(out, e)
		}
	}
	return out
}

func filterEnriched(entries []model.EnrichedEntity, q string) []model.EnrichedEntity {
	key := util.NormalizeName(q)
	if key == "" {
		return entries
	}
	out := make([]model.EnrichedEntity, 0, len(entries))
	for _, e := range entries {
		if nameMatches(e.Name, key) {
			out = append(out, e)
		}
	}
	return out
}

func nameMatches(name, key string) bool {
	normalized := util.NormalizeName(name)
	return normalized != "" && strings.Contains(normalized, key)
}
