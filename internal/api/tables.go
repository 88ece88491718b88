package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetIntegratedTable 获取 S1~S10 合并表
// GET /api/tables/integrated
func (h *Handler) GetIntegratedTable(c *gin.Context) {
	result := h.svc.Latest()
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data loaded yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updatedAt": result.UpdatedAt,
		"records":   result.Integrated,
	})
}

// ListSeasonTables 获取全部赛季表
// GET /api/tables/seasons
func (h *Handler) ListSeasonTables(c *gin.Context) {
	result := h.svc.Latest()
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data loaded yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updatedAt": result.UpdatedAt,
		"seasons":   result.Seasons,
	})
}
