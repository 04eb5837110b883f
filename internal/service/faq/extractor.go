package faq

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/model"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
)

// Source FAQ 的来源
type Source string

const (
	SourceContent  Source = "content"
	SourceMetadata Source = "metadata"
	SourceNone     Source = "none"
)

// 默认组件和属性名
const (
	DefaultComponent = "FAQSection"
	DefaultAttribute = "items"
)

// Extraction 一次提取的详细结果
type Extraction struct {
	Items  []Item `json:"items"`
	Source Source `json:"source"`
	// Instances 正文中带列表属性的组件实例数
	Instances int `json:"instances"`
	// SkippedInstances 因花括号未闭合而跳过的实例数
	SkippedInstances int `json:"skipped_instances"`
}

// Extractor 从文章中提取 FAQ
// 正文优先，正文没有结果时回退到 metadata.faqs
type Extractor struct {
	component string
	attribute string
	logger    *zap.Logger
}

// NewExtractor 创建提取器，名称为空时使用默认值
func NewExtractor(component, attribute string, logger *zap.Logger) *Extractor {
	if component == "" {
		component = DefaultComponent
	}
	if attribute == "" {
		attribute = DefaultAttribute
	}
	return &Extractor{
		component: component,
		attribute: attribute,
		logger:    pkglogger.OrNop(logger),
	}
}

// Extract 返回文章的 FAQ 列表，没有时返回空列表
func (e *Extractor) Extract(post *model.Post) []Item {
	return e.ExtractDetailed(post).Items
}

// ExtractDetailed 提取 FAQ 并返回来源和实例统计
func (e *Extractor) ExtractDetailed(post *model.Post) *Extraction {
	result := &Extraction{Items: []Item{}, Source: SourceNone}
	if post == nil {
		return result
	}

	if post.IsMDX() && post.Content != "" {
		for _, m := range ScanComponent(post.Content, e.component, e.attribute) {
			result.Instances++
			if m.Malformed {
				result.SkippedInstances++
				e.logger.Warn("unterminated faq component, instance skipped",
					zap.String("post_id", post.ID),
					zap.String("component", e.component),
					zap.Int("offset", m.Offset),
				)
				continue
			}
			result.Items = append(result.Items, ParseItemList(m.Expression)...)
		}
		if len(result.Items) > 0 {
			result.Source = SourceContent
			return result
		}
	}

	if items := metadataItems(post.Metadata); len(items) > 0 {
		result.Items = items
		result.Source = SourceMetadata
	}
	return result
}

// ErrInvalidMetadata metadata 无法解析为 JSON 对象
var ErrInvalidMetadata = errors.New("metadata must be a JSON object")

// DecodeMetadata 把 metadata 文本解析为对象
// 严格 JSON 解析失败时尝试修复后再解析，结果不是对象时返回 ErrInvalidMetadata
func DecodeMetadata(raw string) (map[string]interface{}, error) {
	var meta map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &meta); err == nil && meta != nil {
		return meta, nil
	}
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, ErrInvalidMetadata
	}
	if err := json.Unmarshal([]byte(repaired), &meta); err != nil || meta == nil {
		return nil, ErrInvalidMetadata
	}
	return meta, nil
}

// metadataItems 读取 metadata 中的 faqs 数组
func metadataItems(raw string) []Item {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	meta, err := DecodeMetadata(raw)
	if err != nil {
		return nil
	}

	list, ok := meta["faqs"].([]interface{})
	if !ok {
		return nil
	}

	var items []Item
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		q, qok := obj[keyQuestion].(string)
		a, aok := obj[keyAnswer].(string)
		if !qok || !aok {
			continue
		}
		q, a = strings.TrimSpace(q), strings.TrimSpace(a)
		if q == "" || a == "" {
			continue
		}
		items = append(items, Item{Question: q, Answer: a})
	}
	return items
}
