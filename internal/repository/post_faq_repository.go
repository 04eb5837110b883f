package repository

import (
	"context"

	"github.com/ashwinyue/next-blog/internal/model"
	"gorm.io/gorm"
)

// postFAQRepository 文章 FAQ 数据访问
type postFAQRepository struct {
	db *gorm.DB
}

// NewPostFAQRepository 创建文章 FAQ 仓库
func NewPostFAQRepository(db *gorm.DB) PostFAQRepository {
	return &postFAQRepository{db: db}
}

// ListByPostID 列出文章的 FAQ
func (r *postFAQRepository) ListByPostID(ctx context.Context, postID string) ([]*model.PostFAQ, error) {
	var faqs []*model.PostFAQ
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("sort_order ASC").
		Find(&faqs).Error
	return faqs, err
}

// Create 创建 FAQ
func (r *postFAQRepository) Create(ctx context.Context, faq *model.PostFAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

// Update 更新问题、答案和顺序
func (r *postFAQRepository) Update(ctx context.Context, faq *model.PostFAQ) error {
	return r.db.WithContext(ctx).Model(&model.PostFAQ{}).
		Where("id = ?", faq.ID).
		Updates(map[string]interface{}{
			"question":   faq.Question,
			"answer":     faq.Answer,
			"sort_order": faq.Order,
		}).Error
}

// DeleteByIDs 批量删除
func (r *postFAQRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.PostFAQ{})
	return result.RowsAffected, result.Error
}
