package faq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseItemList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Item
	}{
		{
			name:  "unquoted keys",
			input: `[{question: "What is protein?", answer: "A macronutrient."}, {question: 'Why?', answer: 'Because.'}]`,
			want: []Item{
				{Question: "What is protein?", Answer: "A macronutrient."},
				{Question: "Why?", Answer: "Because."},
			},
		},
		{
			name:  "quoted keys",
			input: `[{"question": "Q", 'answer': "A"}]`,
			want:  []Item{{Question: "Q", Answer: "A"}},
		},
		{
			name:  "escapes",
			input: `[{question: "Say \"hi\"", answer: 'It\'s fine\nreally \\ ok'}]`,
			want:  []Item{{Question: `Say "hi"`, Answer: "It's fine\nreally \\ ok"}},
		},
		{
			name:  "missing field drops object",
			input: `[{question: "Only question"}, {question: "Q2", answer: "A2"}]`,
			want:  []Item{{Question: "Q2", Answer: "A2"}},
		},
		{
			name:  "blank field drops object",
			input: `[{question: "   ", answer: "A"}]`,
			want:  nil,
		},
		{
			name:  "braces and commas inside strings",
			input: `[{question: "Use {braces}, ok?", answer: "Yes, [really] }"}]`,
			want:  []Item{{Question: "Use {braces}, ok?", Answer: "Yes, [really] }"}},
		},
		{
			name:  "key name inside another value",
			input: `[{answer: "the question: is moot", question: "Real?"}]`,
			want:  []Item{{Question: "Real?", Answer: "the question: is moot"}},
		},
		{
			name:  "key-like text inside unrelated field",
			input: `[{id: "question: 'fake'", question: "Q", answer: "A"}]`,
			want:  []Item{{Question: "Q", Answer: "A"}},
		},
		{
			name:  "multi-line with trailing comma",
			input: "[\n  {\n    question: \"Q\",\n    answer: \"line one\n  line two\",\n  },\n]",
			want:  []Item{{Question: "Q", Answer: "line one\n  line two"}},
		},
		{
			name:  "comments skipped",
			input: "[{question: \"Q\", // answer: \"don't use\"\n answer: \"A\"}, /* {question: \"x\", answer: \"y\"} */]",
			want:  []Item{{Question: "Q", Answer: "A"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  [{question: \"  padded  \", answer: \"\tA \"}]  ",
			want:  []Item{{Question: "padded", Answer: "A"}},
		},
		{
			name:  "not an array",
			input: `{question: "Q", answer: "A"}`,
			want:  nil,
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  nil,
		},
		{
			name:  "non-string value drops object",
			input: `[{question: "Q", answer: 42}]`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseItemList(tt.input))
		})
	}
}

func TestParseItemList_PreservesOrder(t *testing.T) {
	var parts []string
	var want []Item
	for i := 0; i < 8; i++ {
		q, a := fmt.Sprintf("Question %d", i), fmt.Sprintf("Answer %d", i)
		parts = append(parts, fmt.Sprintf(`{question: %q, answer: %q}`, q, a))
		want = append(want, Item{Question: q, Answer: a})
	}

	got := ParseItemList("[" + strings.Join(parts, ",\n") + "]")
	assert.Equal(t, want, got)
}
