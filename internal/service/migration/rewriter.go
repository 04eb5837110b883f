// Package migration 对已存储文章做一次性的批量内容改写
package migration

import (
	"fmt"
	"regexp"
)

// 默认输出尺寸
const (
	DefaultImageWidth  = 800
	DefaultImageHeight = 450
)

// ImageRewriter 把旧的 <PostImage .../> 标签改写为 <Image .../>
// 只处理 src 以可信 CDN 前缀开头且属性顺序为 slug src alt variant 的标签
type ImageRewriter struct {
	re     *regexp.Regexp
	width  int
	height int
}

// NewImageRewriter 创建改写器
func NewImageRewriter(cdnPrefix string, width, height int) *ImageRewriter {
	if width <= 0 {
		width = DefaultImageWidth
	}
	if height <= 0 {
		height = DefaultImageHeight
	}
	pattern := `<PostImage\s+slug="[^"]*"\s+src="(` + regexp.QuoteMeta(cdnPrefix) +
		`[^"]*)"\s+alt="([^"]*)"\s+variant="[^"]*"\s*/>`
	return &ImageRewriter{
		re:     regexp.MustCompile(pattern),
		width:  width,
		height: height,
	}
}

// Rewrite 返回改写后的内容和替换次数
func (r *ImageRewriter) Rewrite(content string) (string, int) {
	count := 0
	out := r.re.ReplaceAllStringFunc(content, func(tag string) string {
		m := r.re.FindStringSubmatch(tag)
		if m == nil {
			return tag
		}
		count++
		return fmt.Sprintf(`<Image src="%s" alt="%s" width={%d} height={%d} />`, m[1], m[2], r.width, r.height)
	})
	return out, count
}
