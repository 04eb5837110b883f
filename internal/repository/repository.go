package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB   *gorm.DB // 直接访问数据库
	Post PostRepository
	FAQ  PostFAQRepository
	User UserRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:   db,
		Post: NewPostRepository(db),
		FAQ:  NewPostFAQRepository(db),
		User: NewAuthRepository(db),
	}
}

// Transaction 在同一个数据库事务中执行 fn
// fn 返回错误时回滚。DB 为空（测试替身）时直接在当前仓库上执行
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.DB == nil {
		return fn(r)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
