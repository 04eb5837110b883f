package faq

import (
	"regexp"
	"strings"
)

// Item 一条 FAQ
type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const (
	keyQuestion = "question"
	keyAnswer   = "answer"
)

// fieldRe 从左到右匹配 key: value 或独立的字符串字面量
// 独立字符串被整体消费，字符串内部出现的 question: 不会被当作键
var fieldRe = regexp.MustCompile(
	`(?s)(?:"(question|answer)"|'(question|answer)'|\b(question|answer)\b)\s*:\s*` +
		`(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')` +
		`|"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`,
)

var unescaper = strings.NewReplacer(
	`\"`, `"`,
	`\'`, `'`,
	`\n`, "\n",
	`\\`, `\`,
)

// ParseItemList 解析 [{question: "...", answer: "..."}, ...] 形式的对象数组字面量
// 非数组输入返回空；缺少 question 或 answer 的对象被丢弃，顺序保持不变
func ParseItemList(src string) []Item {
	s := strings.TrimSpace(src)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil
	}
	inner := s[1 : len(s)-1]

	var (
		items []Item
		buf   strings.Builder
		depth int
		quote byte
	)
	emit := func() {
		if item, ok := parseObject(buf.String()); ok {
			items = append(items, item)
		}
		buf.Reset()
	}

	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if quote != 0 {
			buf.WriteByte(c)
			if c == quote && !isEscaped(inner, i) {
				quote = 0
			}
			continue
		}
		if end, ok := skipComment(inner, i); ok {
			i = end
			continue
		}

		switch c {
		case '"', '\'':
			if !isEscaped(inner, i) {
				quote = c
			}
			buf.WriteByte(c)
		case '{':
			depth++
			buf.WriteByte(c)
		case '}':
			buf.WriteByte(c)
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				emit()
			}
		case ',':
			if depth == 0 {
				if strings.TrimSpace(buf.String()) != "" {
					emit()
				} else {
					buf.Reset()
				}
				continue
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	if strings.TrimSpace(buf.String()) != "" {
		emit()
	}
	return items
}

// parseObject 从一个对象字面量中取出 question 和 answer
func parseObject(candidate string) (Item, bool) {
	fields := make(map[string]string, 2)
	for _, loc := range fieldRe.FindAllStringSubmatchIndex(candidate, -1) {
		key := firstNonEmpty(group(candidate, loc, 1), group(candidate, loc, 2), group(candidate, loc, 3))
		if key == "" {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		// 第 4 组为双引号值，第 5 组为单引号值
		value := group(candidate, loc, 4)
		if loc[10] >= 0 {
			value = group(candidate, loc, 5)
		}
		fields[key] = strings.TrimSpace(unescaper.Replace(value))
	}

	q, a := fields[keyQuestion], fields[keyAnswer]
	if q == "" || a == "" {
		return Item{}, false
	}
	return Item{Question: q, Answer: a}, true
}

// group 返回第 n 个捕获组的内容，未参与匹配时为空
func group(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
