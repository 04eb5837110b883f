package faq

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// FAQPage schema.org FAQPage 结构化数据
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	URL        string     `json:"url,omitempty"`
	MainEntity []Question `json:"mainEntity"`
}

// Question schema.org Question
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer schema.org Answer，Text 为 HTML
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// JSONLDBuilder 生成 FAQPage 结构化数据
type JSONLDBuilder struct {
	md goldmark.Markdown
}

// NewJSONLDBuilder 创建生成器
func NewJSONLDBuilder() *JSONLDBuilder {
	return &JSONLDBuilder{md: goldmark.New()}
}

// Build 生成 FAQPage，答案按 markdown 渲染为 HTML
func (b *JSONLDBuilder) Build(url string, items []Item) (*FAQPage, error) {
	page := &FAQPage{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		URL:        url,
		MainEntity: make([]Question, 0, len(items)),
	}
	for _, item := range items {
		html, err := b.render(item.Answer)
		if err != nil {
			return nil, err
		}
		page.MainEntity = append(page.MainEntity, Question{
			Type: "Question",
			Name: item.Question,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: html,
			},
		})
	}
	return page, nil
}

func (b *JSONLDBuilder) render(src string) (string, error) {
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
