package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ashwinyue/next-blog/internal/model"
)

func mdxPost(content string) *model.Post {
	return &model.Post{ID: "post-1", Slug: "protein", ContentFormat: model.ContentFormatMDX, Content: content}
}

func TestExtractor_FromContent(t *testing.T) {
	e := NewExtractor("", "", nil)
	post := mdxPost(`# Protein
<FAQSection items={[{question: "How much?", answer: "Depends."}]} />
More text.
<FAQSection items={[{question: "When?", answer: "After training."}]} />`)

	got := e.ExtractDetailed(post)
	assert.Equal(t, SourceContent, got.Source)
	assert.Equal(t, 2, got.Instances)
	assert.Zero(t, got.SkippedInstances)
	assert.Equal(t, []Item{
		{Question: "How much?", Answer: "Depends."},
		{Question: "When?", Answer: "After training."},
	}, got.Items)
}

func TestExtractor_ContentWinsOverMetadata(t *testing.T) {
	e := NewExtractor("", "", nil)
	post := mdxPost(`<FAQSection items={[{question: "From body", answer: "yes"}]} />`)
	post.Metadata = `{"faqs":[{"question":"From metadata","answer":"no"}]}`

	assert.Equal(t, []Item{{Question: "From body", Answer: "yes"}}, e.Extract(post))
}

func TestExtractor_MetadataFallback(t *testing.T) {
	e := NewExtractor("", "", nil)

	t.Run("mdx without component", func(t *testing.T) {
		post := mdxPost("plain body")
		post.Metadata = `{"faqs":[{"question":"Q","answer":"A"},{"question":1,"answer":"x"},"str",{"question":"only"}]}`

		got := e.ExtractDetailed(post)
		assert.Equal(t, SourceMetadata, got.Source)
		assert.Equal(t, []Item{{Question: "Q", Answer: "A"}}, got.Items)
	})

	t.Run("richtext content is never scanned", func(t *testing.T) {
		post := &model.Post{
			ID:            "post-2",
			ContentFormat: model.ContentFormatRichText,
			Content:       `<FAQSection items={[{question: "ignored", answer: "x"}]} />`,
			Metadata:      `{"faqs":[{"question":"Meta","answer":"B"}]}`,
		}
		assert.Equal(t, []Item{{Question: "Meta", Answer: "B"}}, e.Extract(post))
	})

	t.Run("repairs hand edited metadata", func(t *testing.T) {
		post := mdxPost("")
		post.Metadata = `{"faqs":[{"question":"Q","answer":"A"},]}`
		assert.Equal(t, []Item{{Question: "Q", Answer: "A"}}, e.Extract(post))
	})

	t.Run("faqs not an array", func(t *testing.T) {
		post := mdxPost("")
		post.Metadata = `{"faqs":"none"}`
		got := e.ExtractDetailed(post)
		assert.Equal(t, SourceNone, got.Source)
		assert.Empty(t, got.Items)
	})
}

func TestDecodeMetadata(t *testing.T) {
	meta, err := DecodeMetadata(`{"faqs":[]}`)
	require.NoError(t, err)
	assert.Contains(t, meta, "faqs")

	meta, err = DecodeMetadata(`{faqs: [{question: 'Q', answer: 'A'}]}`)
	require.NoError(t, err)
	assert.Len(t, meta["faqs"], 1)

	_, err = DecodeMetadata(`[1, 2]`)
	assert.ErrorIs(t, err, ErrInvalidMetadata)
}

func TestExtractor_Empty(t *testing.T) {
	e := NewExtractor("", "", nil)

	got := e.ExtractDetailed(mdxPost(""))
	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, SourceNone, got.Source)

	assert.Empty(t, e.Extract(nil))
}

func TestExtractor_MalformedInstanceLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	e := NewExtractor("FAQSection", "items", zap.New(core))

	content := `Intro text.
<FAQSection items={[{question: "broken", answer: "x"}] />
<FAQSection items={[{question: "ok", answer: "y"}]} />`
	got := e.ExtractDetailed(mdxPost(content))

	assert.Equal(t, []Item{{Question: "ok", Answer: "y"}}, got.Items)
	assert.Equal(t, 2, got.Instances)
	assert.Equal(t, 1, got.SkippedInstances)

	warnings := logs.FilterMessage("unterminated faq component, instance skipped").All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "post-1", fields["post_id"])
	assert.EqualValues(t, strings.Index(content, "<FAQSection"), fields["offset"])
}
