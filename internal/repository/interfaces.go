// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"
	"errors"

	"github.com/ashwinyue/next-blog/internal/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// PostFilter 文章列表过滤条件
type PostFilter struct {
	Status        string
	ContentFormat string
}

// ========== PostRepository 接口 ==========

// PostRepository 文章数据访问接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	// UpdateContent 只更新正文，批量迁移使用
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// FindInBatches 按主键顺序分批遍历所有文章
	FindInBatches(ctx context.Context, batchSize int, fn func(posts []*model.Post) error) error
}

// ========== PostFAQRepository 接口 ==========

// PostFAQRepository 文章 FAQ 数据访问接口
type PostFAQRepository interface {
	// ListByPostID 按 sort_order 升序返回
	ListByPostID(ctx context.Context, postID string) ([]*model.PostFAQ, error)
	Create(ctx context.Context, faq *model.PostFAQ) error
	Update(ctx context.Context, faq *model.PostFAQ) error
	// DeleteByIDs 单条语句批量删除，返回删除行数
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// ========== UserRepository 接口 ==========

// UserRepository 用户数据访问接口
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// 确保实现了接口
var (
	_ PostRepository    = (*postRepository)(nil)
	_ PostFAQRepository = (*postFAQRepository)(nil)
	_ UserRepository    = (*AuthRepository)(nil)
)
