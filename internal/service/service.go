package service

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/config"
	"github.com/ashwinyue/next-blog/internal/pkg/jwt"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
	"github.com/ashwinyue/next-blog/internal/service/auth"
	"github.com/ashwinyue/next-blog/internal/service/faq"
	"github.com/ashwinyue/next-blog/internal/service/file"
	"github.com/ashwinyue/next-blog/internal/service/migration"
	"github.com/ashwinyue/next-blog/internal/service/post"
)

// Services 服务集合
type Services struct {
	Auth      *auth.Service
	Post      *post.Service
	FAQ       *faq.Service
	Migration *migration.Service

	Config *config.Config
}

// NewServices 创建所有服务
// redisClient 为空时不使用缓存，storage 为空时迁移报告不归档
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client, storage file.Storage, logger *zap.Logger) *Services {
	logger = pkglogger.OrNop(logger)

	cache := faq.NewCache(redisClient, time.Duration(cfg.Content.FAQCacheTTLSeconds)*time.Second)
	faqSvc := faq.NewService(repo, faq.Options{
		Component: cfg.Content.FAQComponent,
		Attribute: cfg.Content.FAQAttribute,
		SiteURL:   cfg.App.SiteURL,
		Cache:     cache,
		Logger:    logger.Named("faq"),
	})

	rewriter := migration.NewImageRewriter(cfg.Content.ImageCDNPrefix, cfg.Content.ImageWidth, cfg.Content.ImageHeight)
	var migrationOpts []migration.Option
	if storage != nil {
		migrationOpts = append(migrationOpts, migration.WithStorage(storage))
	}

	return &Services{
		Auth:      auth.NewService(repo, jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes), logger.Named("auth")),
		Post:      post.NewService(repo, faqSvc, logger.Named("post")),
		FAQ:       faqSvc,
		Migration: migration.NewService(repo, rewriter, logger.Named("migration"), migrationOpts...),
		Config:    cfg,
	}
}
