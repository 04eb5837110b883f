package faq

import (
	"regexp"
	"strings"
)

// ComponentMatch 正文中一个组件实例的扫描结果
type ComponentMatch struct {
	// Offset 组件开标签 "<" 在正文中的位置
	Offset int
	// Expression 属性花括号内的原始表达式（不含外层花括号）
	Expression string
	// Malformed 花括号直到正文末尾都没有闭合
	Malformed bool
}

// ScanComponent 扫描正文中所有 <component ... attribute={...} /> 实例
// 不做 DOM 解析，只在每个开标签后的属性区间内查找 attribute={
// 没有该属性的实例不产生结果，结果按文档顺序返回
func ScanComponent(body, component, attribute string) []ComponentMatch {
	if body == "" || component == "" || attribute == "" {
		return nil
	}

	openRe := regexp.MustCompile(`<` + regexp.QuoteMeta(component) + `\b`)
	attrRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(attribute) + `\s*=\s*\{`)

	var matches []ComponentMatch
	pos := 0
	for pos < len(body) {
		loc := openRe.FindStringIndex(body[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		tagEnd := pos + loc[1]

		// 属性区间：到第一个 "/>" 或下一个同名开标签为止
		spanEnd := len(body)
		if i := strings.Index(body[tagEnd:], "/>"); i >= 0 {
			spanEnd = tagEnd + i
		}
		if next := openRe.FindStringIndex(body[tagEnd:]); next != nil && tagEnd+next[0] < spanEnd {
			spanEnd = tagEnd + next[0]
		}

		attr := attrRe.FindStringIndex(body[tagEnd:spanEnd])
		if attr == nil {
			pos = tagEnd
			continue
		}

		exprStart := tagEnd + attr[1]
		end, ok := FindClosingBrace(body, exprStart)
		if !ok {
			matches = append(matches, ComponentMatch{Offset: start, Malformed: true})
			pos = tagEnd
			continue
		}

		matches = append(matches, ComponentMatch{
			Offset:     start,
			Expression: body[exprStart : end-1],
		})
		pos = end
	}
	return matches
}

// FindClosingBrace 从 start（紧跟在 "{" 之后）开始查找与之配对的 "}"
// 单双引号字符串内的花括号不计入深度，未转义的同种引号结束字符串
// 字符串外的 // 和 /* */ 注释被跳过
// 返回配对 "}" 之后的位置；直到末尾仍未闭合时返回 len(s), false
func FindClosingBrace(s string, start int) (int, bool) {
	depth := 1
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && !isEscaped(s, i) {
				quote = 0
			}
			continue
		}
		if end, ok := skipComment(s, i); ok {
			i = end
			continue
		}
		switch c {
		case '"', '\'':
			if !isEscaped(s, i) {
				quote = c
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s), false
}

// isEscaped 判断 s[i] 前是否有奇数个反斜杠
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// skipComment s[i] 在字符串外开始 // 或 /* 注释时返回注释最后一个字符的位置
// 行注释止于换行符之前，未闭合的块注释延伸到末尾
func skipComment(s string, i int) (int, bool) {
	if s[i] != '/' || i+1 >= len(s) {
		return i, false
	}
	switch s[i+1] {
	case '/':
		if j := strings.IndexByte(s[i+2:], '\n'); j >= 0 {
			return i + 1 + j, true
		}
		return len(s) - 1, true
	case '*':
		if j := strings.Index(s[i+2:], "*/"); j >= 0 {
			return i + 3 + j, true
		}
		return len(s) - 1, true
	}
	return i, false
}
