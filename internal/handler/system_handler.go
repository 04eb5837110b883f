package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-blog/internal/service"
)

// Pinger 检查依赖是否可用
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler 系统处理器
type SystemHandler struct {
	svc    *service.Services
	pinger Pinger
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services, pinger Pinger) *SystemHandler {
	return &SystemHandler{svc: svc, pinger: pinger}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	version := ""
	if h.svc != nil && h.svc.Config != nil {
		version = h.svc.Config.App.Version
	}

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unavailable",
				"database": err.Error(),
				"version":  version,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
}
