// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/repository"
)

// MemoryStore 内存版仓库，实现 repository 包的全部接口
// 错误字段非空时对应操作直接返回该错误
type MemoryStore struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	faqs  map[string]*model.PostFAQ
	users map[string]*model.User

	CreateFAQErr     error
	UpdateFAQErr     error
	DeleteFAQErr     error
	UpdateContentErr func(id string) error

	// FAQWrites 记录 FAQ 表的写操作次数
	FAQWrites   int
	DeleteCalls int
}

// NewMemoryStore 创建内存仓库
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts: make(map[string]*model.Post),
		faqs:  make(map[string]*model.PostFAQ),
		users: make(map[string]*model.User),
	}
}

// Repositories 返回以内存仓库为后端的仓库集合
func (s *MemoryStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Post: &memPosts{s: s},
		FAQ:  &memFAQs{s: s},
		User: &memUsers{s: s},
	}
}

// AddPost 写入一篇文章，ID 为空时自动生成
func (s *MemoryStore) AddPost(post *model.Post) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	cp := *post
	s.posts[post.ID] = &cp
	return post
}

// Post 返回文章副本
func (s *MemoryStore) Post(id string) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// AddFAQ 直接写入一条 FAQ
func (s *MemoryStore) AddFAQ(postID, question, answer string, order int) *model.PostFAQ {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := &model.PostFAQ{
		ID:       uuid.New().String(),
		PostID:   postID,
		Question: question,
		Answer:   answer,
		Order:    order,
	}
	s.faqs[row.ID] = row
	return row
}

// FAQs 返回文章 FAQ 副本，按 Order 升序
func (s *MemoryStore) FAQs(postID string) []model.PostFAQ {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.PostFAQ
	for _, f := range s.faqs {
		if f.PostID == postID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ========== posts ==========

type memPosts struct{ s *MemoryStore }

func (r *memPosts) Create(_ context.Context, post *model.Post) error {
	r.s.AddPost(post)
	return nil
}

func (r *memPosts) GetByID(_ context.Context, id string) (*model.Post, error) {
	if p := r.s.Post(id); p != nil {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memPosts) GetBySlug(_ context.Context, slug string) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPosts) List(_ context.Context, filter repository.PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	all := r.sorted()
	var matched []*model.Post
	for _, p := range all {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ContentFormat != "" && p.ContentFormat != filter.ContentFormat {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*model.Post{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *memPosts) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *post
	r.s.posts[post.ID] = &cp
	return nil
}

func (r *memPosts) UpdateContent(_ context.Context, id, content string) error {
	if r.s.UpdateContentErr != nil {
		if err := r.s.UpdateContentErr(id); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Content = content
	return nil
}

func (r *memPosts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	for fid, f := range r.s.faqs {
		if f.PostID == id {
			delete(r.s.faqs, fid)
		}
	}
	return nil
}

func (r *memPosts) FindInBatches(_ context.Context, batchSize int, fn func(posts []*model.Post) error) error {
	all := r.sorted()
	for start := 0; start < len(all); start += batchSize {
		end := start + batchSize
		if end > len(all) {
			end = len(all)
		}
		if err := fn(all[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// sorted 按 ID 排序返回全部文章副本
func (r *memPosts) sorted() []*model.Post {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ========== faqs ==========

type memFAQs struct{ s *MemoryStore }

func (r *memFAQs) ListByPostID(_ context.Context, postID string) ([]*model.PostFAQ, error) {
	rows := r.s.FAQs(postID)
	out := make([]*model.PostFAQ, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *memFAQs) Create(_ context.Context, faq *model.PostFAQ) error {
	if r.s.CreateFAQErr != nil {
		return r.s.CreateFAQErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *faq
	r.s.faqs[faq.ID] = &cp
	r.s.FAQWrites++
	return nil
}

func (r *memFAQs) Update(_ context.Context, faq *model.PostFAQ) error {
	if r.s.UpdateFAQErr != nil {
		return r.s.UpdateFAQErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.faqs[faq.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *faq
	r.s.faqs[faq.ID] = &cp
	r.s.FAQWrites++
	return nil
}

func (r *memFAQs) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	if r.s.DeleteFAQErr != nil {
		return 0, r.s.DeleteFAQErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.DeleteCalls++
	var n int64
	for _, id := range ids {
		if _, ok := r.s.faqs[id]; ok {
			delete(r.s.faqs, id)
			n++
		}
	}
	if n > 0 {
		r.s.FAQWrites++
	}
	return n, nil
}

// ========== users ==========

type memUsers struct{ s *MemoryStore }

func (r *memUsers) CreateUser(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUsers) GetUserByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *memUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *memUsers) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *memUsers) UpdateUser(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUsers) find(match func(*model.User) bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

var (
	_ repository.PostRepository    = (*memPosts)(nil)
	_ repository.PostFAQRepository = (*memFAQs)(nil)
	_ repository.UserRepository    = (*memUsers)(nil)
)
