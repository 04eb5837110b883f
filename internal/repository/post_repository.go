package repository

import (
	"context"
	"errors"

	"github.com/ashwinyue/next-blog/internal/model"
	"gorm.io/gorm"
)

// postRepository 文章数据访问
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 创建文章
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID 获取文章
func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetBySlug 按 slug 获取文章
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// List 列出文章
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContentFormat != "" {
		query = query.Where("content_format = ?", filter.ContentFormat)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// Update 更新文章
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("FAQs").Save(post).Error
}

// UpdateContent 更新正文
func (r *postRepository) UpdateContent(ctx context.Context, id, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除文章，FAQ 由外键级联删除
func (r *postRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindInBatches 分批遍历
func (r *postRepository) FindInBatches(ctx context.Context, batchSize int, fn func(posts []*model.Post) error) error {
	var batch []*model.Post
	return r.db.WithContext(ctx).
		Select("id", "title", "slug", "content").
		Order("id").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

// translate 把 gorm 的错误转换为仓库层错误
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
