package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-blog/internal/middleware"
	"github.com/ashwinyue/next-blog/internal/service"
	"github.com/ashwinyue/next-blog/internal/service/post"
)

// PostHandler 文章处理器
type PostHandler struct {
	svc *service.Services
}

// NewPostHandler 创建文章处理器
func NewPostHandler(svc *service.Services) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePost 创建文章
// POST /api/v1/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	authorID, _ := middleware.GetUserID(c)
	result, err := h.svc.Post.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// GetPost 获取文章
// GET /api/v1/admin/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	p, err := h.svc.Post.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, p)
}

// ListPosts 列出文章
// GET /api/v1/admin/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	var req post.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	resp, err := h.svc.Post.List(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	SuccessWithPagination(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// UpdatePost 更新文章
// PUT /api/v1/admin/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req post.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Post.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// DeletePost 删除文章
// DELETE /api/v1/admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.svc.Post.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}

// GetPublishedPost 获取已发布文章
// GET /api/v1/posts/:slug
func (h *PostHandler) GetPublishedPost(c *gin.Context) {
	p, err := h.svc.Post.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, p)
}
