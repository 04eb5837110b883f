package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/model"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
	"github.com/ashwinyue/next-blog/internal/service/faq"
)

var (
	// ErrPostNotFound 文章不存在
	ErrPostNotFound = faq.ErrPostNotFound
	// ErrSlugTaken slug 已被占用
	ErrSlugTaken = errors.New("slug already in use")
	// ErrInvalidMetadata metadata 不是 JSON 对象
	ErrInvalidMetadata = faq.ErrInvalidMetadata
	// ErrSlugRequired 标题无法生成 slug 且未指定 slug
	ErrSlugRequired = errors.New("slug is required")
)

// Service 文章服务
type Service struct {
	repo   *repository.Repositories
	faq    *faq.Service
	logger *zap.Logger
}

// NewService 创建文章服务
func NewService(repo *repository.Repositories, faqSvc *faq.Service, logger *zap.Logger) *Service {
	return &Service{repo: repo, faq: faqSvc, logger: pkglogger.OrNop(logger)}
}

// ========== 请求/响应类型 ==========

// CreateRequest 创建文章请求
type CreateRequest struct {
	Title         string          `json:"title" binding:"required"`
	Slug          string          `json:"slug"`
	Excerpt       string          `json:"excerpt"`
	Content       string          `json:"content"`
	ContentFormat string          `json:"content_format" binding:"omitempty,oneof=richtext mdx"`
	Metadata      json.RawMessage `json:"metadata"`
	Status        string          `json:"status" binding:"omitempty,oneof=draft published"`
}

// UpdateRequest 更新文章请求，空字段不修改
type UpdateRequest struct {
	Title         *string         `json:"title"`
	Slug          *string         `json:"slug"`
	Excerpt       *string         `json:"excerpt"`
	Content       *string         `json:"content"`
	ContentFormat *string         `json:"content_format" binding:"omitempty,oneof=richtext mdx"`
	Metadata      json.RawMessage `json:"metadata"`
	Status        *string         `json:"status" binding:"omitempty,oneof=draft published"`
}

// ListRequest 列出文章请求
type ListRequest struct {
	Status        string `form:"status"`
	ContentFormat string `form:"content_format"`
	Page          int    `form:"page"`
	Size          int    `form:"size"`
}

// ListResponse 列出文章响应
type ListResponse struct {
	Items []*model.Post `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

// SaveResult 保存结果，附带自动同步 FAQ 的结果
type SaveResult struct {
	Post         *model.Post     `json:"post"`
	FAQSync      *faq.SyncResult `json:"faq_sync,omitempty"`
	FAQSyncError string          `json:"faq_sync_error,omitempty"`
}

// ========== 文章操作 ==========

// Create 创建文章
func (s *Service) Create(ctx context.Context, authorID string, req *CreateRequest) (*SaveResult, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}
	metadata, err := normalizeMetadata(req.Metadata)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Slug:          slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		ContentFormat: defaultString(req.ContentFormat, model.ContentFormatRichText),
		Metadata:      metadata,
		Status:        defaultString(req.Status, model.PostStatusDraft),
		AuthorID:      authorID,
	}
	if post.IsPublished() {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.Post.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return s.afterSave(ctx, post), nil
}

// Get 获取文章及其 FAQ
func (s *Service) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withFAQs(ctx, post)
}

// GetPublished 按 slug 获取已发布文章
func (s *Service) GetPublished(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.repo.Post.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	if !post.IsPublished() {
		return nil, ErrPostNotFound
	}
	return s.withFAQs(ctx, post)
}

// List 列出文章
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 || req.Size > 100 {
		req.Size = 20
	}
	offset := (req.Page - 1) * req.Size

	posts, total, err := s.repo.Post.List(ctx, repository.PostFilter{
		Status:        req.Status,
		ContentFormat: req.ContentFormat,
	}, offset, req.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return &ListResponse{Items: posts, Total: total, Page: req.Page, Size: req.Size}, nil
}

// Update 更新文章并重新同步 FAQ
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*SaveResult, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	oldSlug := post.Slug

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != post.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug, post.ID); err != nil {
			return nil, err
		}
		post.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.ContentFormat != nil {
		post.ContentFormat = *req.ContentFormat
	}
	if req.Metadata != nil {
		metadata, err := normalizeMetadata(req.Metadata)
		if err != nil {
			return nil, err
		}
		post.Metadata = metadata
	}
	if req.Status != nil {
		post.Status = *req.Status
		if post.IsPublished() && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.repo.Post.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	// 旧 slug 下的缓存不会再被同步清理
	if oldSlug != post.Slug {
		s.invalidate(ctx, oldSlug)
	}
	return s.afterSave(ctx, post), nil
}

// Delete 删除文章并清除其 FAQ 缓存
func (s *Service) Delete(ctx context.Context, id string) error {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.Post.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, post.Slug)
	return nil
}

func (s *Service) invalidate(ctx context.Context, slug string) {
	if s.faq != nil {
		s.faq.Invalidate(ctx, slug)
	}
}

// afterSave 保存后同步 FAQ，同步失败不影响已保存的文章
func (s *Service) afterSave(ctx context.Context, post *model.Post) *SaveResult {
	result := &SaveResult{Post: post}
	if s.faq == nil {
		return result
	}
	syncRes, err := s.faq.SyncPost(ctx, post)
	if err != nil {
		s.logger.Error("faq sync after save failed", zap.String("post_id", post.ID), zap.Error(err))
		result.FAQSyncError = err.Error()
		return result
	}
	result.FAQSync = syncRes
	return result
}

func (s *Service) withFAQs(ctx context.Context, post *model.Post) (*model.Post, error) {
	rows, err := s.repo.FAQ.ListByPostID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	post.FAQs = make([]model.PostFAQ, 0, len(rows))
	for _, row := range rows {
		post.FAQs = append(post.FAQs, *row)
	}
	return post, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	if slug == "" {
		return ErrSlugRequired
	}
	existing, err := s.repo.Post.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if existing.ID != selfID {
		return ErrSlugTaken
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 把标题转换为 URL slug
func Slugify(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// normalizeMetadata 校验 metadata 并返回要保存的文本
// 可以是 JSON 对象，也可以是包含对象文本的字符串，手写的不规范对象在能修复时原样保存
func normalizeMetadata(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal([]byte(trimmed), &text); err != nil {
			return "", ErrInvalidMetadata
		}
		trimmed = strings.TrimSpace(text)
		if trimmed == "" {
			return "", nil
		}
	}
	if _, err := faq.DecodeMetadata(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
