package server

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/yxlinfo/yxl-info/internal/api"
	"github.com/yxlinfo/yxl-info/internal/config"
	"github.com/yxlinfo/yxl-info/internal/fetcher"
	"github.com/yxlinfo/yxl-info/internal/pipeline"
	"github.com/yxlinfo/yxl-info/internal/ranker"
	"github.com/yxlinfo/yxl-info/internal/soop"
	"github.com/yxlinfo/yxl-info/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	svc    *pipeline.Service
	api    *api.Handler
}

// NewServer 创建服务器并组装整条流水线
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite KV 存储
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "yxlhub.db")

	kvStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// SOOP 解析与直播补充
	client := soop.NewClient(cfg.Soop.BaseURL)
	resolver := soop.NewResolver(client, kvStore, cfg.Soop.Overrides, cfg.IdentityTTL())
	enricher := soop.NewEnricher(client, resolver, cfg.Soop.Workers, cfg.RequestDelay(), cfg.LiveTTL())

	// 排名与流水线
	tracker := ranker.NewTracker(kvStore)
	p := pipeline.New(fetcher.New(cfg.FetchTimeout()), tracker, enricher, pipeline.Options{
		MainURL:    cfg.Source.MainURL,
		SynergyURL: cfg.Source.SynergyURL,
	})
	svc := pipeline.NewService(p, cfg.RefreshInterval())

	s := &Server{
		router: gin.Default(),
		store:  kvStore,
		svc:    svc,
		api:    api.NewHandler(svc),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}

// Run 启动首轮刷新、定时刷新和 HTTP 服务
func (s *Server) Run(addr string) error {
	s.svc.Start(context.Background())
	return s.router.Run(addr)
}

// Shutdown 停止定时刷新并关闭存储
func (s *Server) Shutdown() error {
	s.svc.Stop()
	return s.store.Close()
}

// Service 获取刷新服务（用于测试）
func (s *Server) Service() *pipeline.Service {
	return s.svc
}
