package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/service"
)

// FAQHandler FAQ处理器
type FAQHandler struct {
	svc *service.Services
}

// NewFAQHandler 创建FAQ处理器
func NewFAQHandler(svc *service.Services) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// SyncFAQs 从文章当前内容同步 FAQ
// POST /api/v1/admin/posts/:id/faqs/sync
func (h *FAQHandler) SyncFAQs(c *gin.Context) {
	result, err := h.svc.FAQ.SyncFAQs(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

// PreviewRequest 提取预览请求
type PreviewRequest struct {
	Content       string `json:"content"`
	ContentFormat string `json:"content_format" binding:"omitempty,oneof=richtext mdx"`
	Metadata      string `json:"metadata"`
}

// PreviewFAQs 只提取不写库
// POST /api/v1/admin/faqs/preview
func (h *FAQHandler) PreviewFAQs(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	format := req.ContentFormat
	if format == "" {
		format = model.ContentFormatMDX
	}
	extraction := h.svc.FAQ.Preview(&model.Post{
		ID:            "preview",
		Content:       req.Content,
		ContentFormat: format,
		Metadata:      req.Metadata,
	})
	Success(c, extraction)
}

// ListPublishedFAQs 已发布文章的 FAQ
// GET /api/v1/posts/:slug/faqs
func (h *FAQHandler) ListPublishedFAQs(c *gin.Context) {
	items, err := h.svc.FAQ.ListPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, items)
}

// GetFAQJSONLD FAQPage 结构化数据，直接返回 JSON-LD
// GET /api/v1/posts/:slug/faqs/jsonld
func (h *FAQHandler) GetFAQJSONLD(c *gin.Context) {
	page, err := h.svc.FAQ.JSONLD(c.Request.Context(), c.Param("slug"))
	if err != nil {
		Error(c, err)
		return
	}
	c.Header("Content-Type", "application/ld+json; charset=utf-8")
	c.JSON(200, page)
}
