package model

import (
	"time"
)

// 正文格式
const (
	ContentFormatRichText = "richtext" // 普通富文本
	ContentFormatMDX      = "mdx"      // 含内嵌组件的富文本
)

// 文章状态
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post 文章
type Post struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text" json:"content"`
	ContentFormat string     `gorm:"size:20;default:richtext" json:"content_format"`
	Metadata      string     `gorm:"type:text" json:"metadata"` // JSON 对象文本，可能包含 faqs
	Status        string     `gorm:"size:20;index;default:draft" json:"status"`
	AuthorID      string     `gorm:"size:36;index" json:"author_id"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	FAQs          []PostFAQ  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"faqs,omitempty"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// IsMDX 正文是否包含内嵌组件
func (p *Post) IsMDX() bool {
	return p.ContentFormat == ContentFormatMDX
}

// IsPublished 是否已发布
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostFAQ 文章 FAQ，由正文同步生成
// 同一文章下 Order 从 0 开始连续且不重复
type PostFAQ struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:idx_post_faq_order,priority:1" json:"post_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Order     int       `gorm:"column:sort_order;not null;uniqueIndex:idx_post_faq_order,priority:2" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (PostFAQ) TableName() string {
	return "post_faqs"
}
