package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yxlinfo/yxl-info/internal/pipeline"
)

// Handler API 处理器
// 渲染层（前端页面）只消费这里的只读 JSON
type Handler struct {
	svc *pipeline.Service
}

// NewHandler 创建 API 处理器
func NewHandler(svc *pipeline.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 排名
	router.GET("/rankings/total", h.GetTotalRanking)
	router.GET("/rankings/synergy", h.GetSynergyRanking)

	// 原表
	router.GET("/tables/integrated", h.GetIntegratedTable)
	router.GET("/tables/seasons", h.ListSeasonTables)

	// 手动刷新
	router.POST("/refresh", h.Refresh)
}
