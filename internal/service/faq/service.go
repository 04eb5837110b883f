package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/model"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
)

// Service FAQ服务
type Service struct {
	repos      *repository.Repositories
	extractor  *Extractor
	reconciler *Reconciler
	cache      *Cache
	jsonld     *JSONLDBuilder
	siteURL    string
	logger     *zap.Logger
}

// Options 服务配置
type Options struct {
	Component string
	Attribute string
	SiteURL   string
	Cache     *Cache
	Logger    *zap.Logger
}

// NewService 创建FAQ服务
func NewService(repos *repository.Repositories, opts Options) *Service {
	logger := pkglogger.OrNop(opts.Logger)
	return &Service{
		repos:      repos,
		extractor:  NewExtractor(opts.Component, opts.Attribute, logger),
		reconciler: NewReconciler(repos),
		cache:      opts.Cache,
		jsonld:     NewJSONLDBuilder(),
		siteURL:    strings.TrimRight(opts.SiteURL, "/"),
		logger:     logger,
	}
}

// SyncResult 同步结果
type SyncResult struct {
	ReconcileResult
	Source           Source `json:"source"`
	SkippedInstances int    `json:"skipped_instances"`
}

// SyncFAQs 从文章当前内容重新提取 FAQ 并写入数据库
func (s *Service) SyncFAQs(ctx context.Context, postID string) (*SyncResult, error) {
	post, err := s.repos.Post.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return s.SyncPost(ctx, post)
}

// SyncPost 同步已加载的文章
func (s *Service) SyncPost(ctx context.Context, post *model.Post) (*SyncResult, error) {
	extraction := s.extractor.ExtractDetailed(post)

	res, err := s.reconciler.Reconcile(ctx, post.ID, extraction.Items)
	if err != nil {
		s.logger.Error("faq sync failed", zap.String("post_id", post.ID), zap.Error(err))
		return nil, err
	}

	s.Invalidate(ctx, post.Slug)

	s.logger.Info("faqs synced",
		zap.String("post_id", post.ID),
		zap.String("source", string(extraction.Source)),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("deleted", res.Deleted),
	)

	return &SyncResult{
		ReconcileResult:  *res,
		Source:           extraction.Source,
		SkippedInstances: extraction.SkippedInstances,
	}, nil
}

// Invalidate 清除 slug 的公开 FAQ 缓存，失败只记日志
func (s *Service) Invalidate(ctx context.Context, slug string) {
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("failed to invalidate faq cache", zap.String("slug", slug), zap.Error(err))
	}
}

// Preview 只提取不写库
func (s *Service) Preview(post *model.Post) *Extraction {
	return s.extractor.ExtractDetailed(post)
}

// ListPublished 返回已发布文章的 FAQ，优先读缓存
func (s *Service) ListPublished(ctx context.Context, slug string) ([]Item, error) {
	if items, ok, err := s.cache.Get(ctx, slug); err != nil {
		s.logger.Warn("failed to read faq cache", zap.String("slug", slug), zap.Error(err))
	} else if ok {
		return items, nil
	}

	post, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.repos.FAQ.ListByPostID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{Question: row.Question, Answer: row.Answer})
	}

	if err := s.cache.Set(ctx, slug, items); err != nil {
		s.logger.Warn("failed to write faq cache", zap.String("slug", slug), zap.Error(err))
	}
	return items, nil
}

// JSONLD 返回文章的 FAQPage 结构化数据
func (s *Service) JSONLD(ctx context.Context, slug string) (*FAQPage, error) {
	items, err := s.ListPublished(ctx, slug)
	if err != nil {
		return nil, err
	}
	url := ""
	if s.siteURL != "" {
		url = s.siteURL + "/blog/" + slug
	}
	return s.jsonld.Build(url, items)
}

func (s *Service) publishedPost(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.repos.Post.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if !post.IsPublished() {
		return nil, ErrPostNotFound
	}
	return post, nil
}
