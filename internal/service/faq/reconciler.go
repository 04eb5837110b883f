package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/repository"
)

// ErrPostNotFound 文章不存在
var ErrPostNotFound = errors.New("post not found")

// ReconcileResult 一次同步的增删改计数
type ReconcileResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// Changed 是否有任何写入
func (r *ReconcileResult) Changed() bool {
	return r.Created+r.Updated+r.Deleted > 0
}

// Reconciler 把提取到的 FAQ 列表同步到数据库
// 新旧记录按位置一一对应，调整顺序等同于逐条修改
type Reconciler struct {
	repos *repository.Repositories
}

// NewReconciler 创建同步器
func NewReconciler(repos *repository.Repositories) *Reconciler {
	return &Reconciler{repos: repos}
}

// Reconcile 使文章的 FAQ 记录与 items 一致
// 全部写入在同一事务中完成，任何一步失败整体回滚
func (r *Reconciler) Reconcile(ctx context.Context, postID string, items []Item) (*ReconcileResult, error) {
	var result *ReconcileResult
	err := r.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		res, err := reconcile(ctx, tx, postID, items)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func reconcile(ctx context.Context, tx *repository.Repositories, postID string, items []Item) (*ReconcileResult, error) {
	if _, err := tx.Post.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	existing, err := tx.FAQ.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}

	// existing 按 sort_order 升序，逐位改写不会与尚未处理的行冲突
	result := &ReconcileResult{}
	for i, item := range items {
		if i < len(existing) {
			row := existing[i]
			if row.Question == item.Question && row.Answer == item.Answer && row.Order == i {
				continue
			}
			row.Question = item.Question
			row.Answer = item.Answer
			row.Order = i
			if err := tx.FAQ.Update(ctx, row); err != nil {
				return nil, fmt.Errorf("failed to update faq %s: %w", row.ID, err)
			}
			result.Updated++
			continue
		}

		row := &model.PostFAQ{
			ID:       uuid.New().String(),
			PostID:   postID,
			Question: item.Question,
			Answer:   item.Answer,
			Order:    i,
		}
		if err := tx.FAQ.Create(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to create faq: %w", err)
		}
		result.Created++
	}

	if len(existing) > len(items) {
		ids := make([]string, 0, len(existing)-len(items))
		for _, row := range existing[len(items):] {
			ids = append(ids, row.ID)
		}
		n, err := tx.FAQ.DeleteByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to delete faqs: %w", err)
		}
		result.Deleted = int(n)
	}

	return result, nil
}
