package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized  bool      `json:"initialized"`  // 是否已有一轮成功刷新
	RunID        string    `json:"runId"`        // 最近一轮刷新标识
	RefreshedAt  time.Time `json:"refreshedAt"`  // 最近刷新完成时间
	UpdatedAt    time.Time `json:"updatedAt"`    // 源表自带的数据时间
	TotalCount   int       `json:"totalCount"`   // 累计榜人数
	SynergyCount int       `json:"synergyCount"` // 시너지표人数
	SeasonCount  int       `json:"seasonCount"`  // 已识别赛季表数
	Errors       []string  `json:"errors,omitempty"`
	LastError    string    `json:"lastError,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{}

	if err := h.svc.LastError(); err != nil {
		resp.LastError = err.Error()
	}

	result := h.svc.Latest()
	if result == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Initialized = true
	resp.RunID = result.RunID
	resp.RefreshedAt = result.RefreshedAt
	resp.UpdatedAt = result.UpdatedAt
	resp.TotalCount = len(result.Total)
	resp.SynergyCount = len(result.Synergy)
	resp.SeasonCount = len(result.Seasons)
	resp.Errors = result.Errors

	c.JSON(http.StatusOK, resp)
}

// Refresh 手动触发一轮刷新
// POST /api/refresh
func (h *Handler) Refresh(c *gin.Context) {
	result, err := h.svc.RefreshNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":       result.RunID,
		"refreshedAt": result.RefreshedAt,
		"errors":      result.Errors,
	})
}
