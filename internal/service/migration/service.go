package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/model"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
	"github.com/ashwinyue/next-blog/internal/service/file"
)

const defaultBatchSize = 100

// UpdatedPost 已改写文章的明细
type UpdatedPost struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Replacements int    `json:"replacements"`
}

// FailedPost 改写失败的文章
type FailedPost struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

// Manifest 一次批量改写的报告
type Manifest struct {
	TotalPosts   int `json:"totalPosts"`
	UpdatedCount int `json:"updatedCount"`
	// UpdatedPosts 已改写文章的标题
	UpdatedPosts   []string      `json:"updatedPosts"`
	UpdatedDetails []UpdatedPost `json:"updatedDetails"`
	FailedCount    int           `json:"failedCount"`
	FailedPosts    []FailedPost  `json:"failedPosts"`
	StartedAt      time.Time     `json:"startedAt"`
	FinishedAt     time.Time     `json:"finishedAt"`
	// ReportPath 报告归档位置，未归档时为空
	ReportPath string `json:"reportPath,omitempty"`
	ReportURL  string `json:"reportUrl,omitempty"`
}

// Service 批量迁移服务
type Service struct {
	repos     *repository.Repositories
	rewriter  *ImageRewriter
	storage   file.Storage
	logger    *zap.Logger
	batchSize int
	now       func() time.Time
}

// Option 服务选项
type Option func(*Service)

// WithStorage 设置报告归档存储
func WithStorage(s file.Storage) Option {
	return func(svc *Service) { svc.storage = s }
}

// WithBatchSize 设置每批读取的文章数
func WithBatchSize(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.batchSize = n
		}
	}
}

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService 创建迁移服务
func NewService(repos *repository.Repositories, rewriter *ImageRewriter, logger *zap.Logger, opts ...Option) *Service {
	svc := &Service{
		repos:     repos,
		rewriter:  rewriter,
		logger:    pkglogger.OrNop(logger),
		batchSize: defaultBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RewritePostImages 改写所有文章中的旧图片标签
// 单篇写入失败只记录在报告中，不中断整批
func (s *Service) RewritePostImages(ctx context.Context) (*Manifest, error) {
	manifest := &Manifest{
		UpdatedPosts:   []string{},
		UpdatedDetails: []UpdatedPost{},
		FailedPosts:    []FailedPost{},
		StartedAt:      s.now().UTC(),
	}

	err := s.repos.Post.FindInBatches(ctx, s.batchSize, func(posts []*model.Post) error {
		for _, post := range posts {
			manifest.TotalPosts++
			s.rewritePost(ctx, post, manifest)
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}

	manifest.UpdatedCount = len(manifest.UpdatedPosts)
	manifest.FailedCount = len(manifest.FailedPosts)
	manifest.FinishedAt = s.now().UTC()

	s.logger.Info("image rewrite finished",
		zap.Int("total", manifest.TotalPosts),
		zap.Int("updated", manifest.UpdatedCount),
		zap.Int("failed", manifest.FailedCount),
	)

	s.archive(ctx, manifest)
	return manifest, nil
}

func (s *Service) rewritePost(ctx context.Context, post *model.Post, manifest *Manifest) {
	content, n := s.rewriter.Rewrite(post.Content)
	if n == 0 || content == post.Content {
		return
	}

	if err := s.repos.Post.UpdateContent(ctx, post.ID, content); err != nil {
		s.logger.Error("failed to update post content",
			zap.String("post_id", post.ID),
			zap.String("slug", post.Slug),
			zap.Error(err),
		)
		manifest.FailedPosts = append(manifest.FailedPosts, FailedPost{
			ID:    post.ID,
			Slug:  post.Slug,
			Error: err.Error(),
		})
		return
	}

	s.logger.Debug("post images rewritten", zap.String("post_id", post.ID), zap.Int("replacements", n))
	manifest.UpdatedPosts = append(manifest.UpdatedPosts, post.Title)
	manifest.UpdatedDetails = append(manifest.UpdatedDetails, UpdatedPost{
		ID:           post.ID,
		Slug:         post.Slug,
		Replacements: n,
	})
}

// archive 把报告写入存储，失败只记日志
func (s *Service) archive(ctx context.Context, manifest *Manifest) {
	if s.storage == nil {
		return
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		s.logger.Warn("failed to encode manifest", zap.Error(err))
		return
	}

	key := fmt.Sprintf("migrations/image-rewrite-%s.json", manifest.StartedAt.Format("20060102T150405Z"))
	path, err := s.storage.Save(ctx, &file.SaveRequest{
		Key:         key,
		ContentType: "application/json",
		Size:        int64(len(data)),
		Reader:      bytes.NewReader(data),
	})
	if err != nil {
		s.logger.Warn("failed to archive manifest", zap.String("key", key), zap.Error(err))
		return
	}
	manifest.ReportPath = path
	manifest.ReportURL = s.storage.GetURL(path)
}
