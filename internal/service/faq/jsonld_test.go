package faq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLDBuilder_Build(t *testing.T) {
	b := NewJSONLDBuilder()

	page, err := b.Build("", []Item{{Question: "Q", Answer: "Plain answer"}})
	require.NoError(t, err)

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://schema.org", decoded["@context"])
	assert.Equal(t, "FAQPage", decoded["@type"])
	assert.NotContains(t, decoded, "url")

	entities := decoded["mainEntity"].([]interface{})
	require.Len(t, entities, 1)
	q := entities[0].(map[string]interface{})
	assert.Equal(t, "Question", q["@type"])
	assert.Equal(t, "Q", q["name"])
	answer := q["acceptedAnswer"].(map[string]interface{})
	assert.Equal(t, "<p>Plain answer</p>", answer["text"])
}

func TestJSONLDBuilder_EmptyList(t *testing.T) {
	page, err := NewJSONLDBuilder().Build("https://x.test/blog/a", nil)
	require.NoError(t, err)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mainEntity":[]`)
}
