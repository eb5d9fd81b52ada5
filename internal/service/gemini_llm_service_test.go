package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		items, err := parseStringList(`["first question", "second question"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"first question", "second question"}, items)
	})

	t.Run("fenced array", func(t *testing.T) {
		items, err := parseStringList("```json\n[\"only one\"]\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"only one"}, items)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := parseStringList(`{"questions": ["nested"]}`)
		require.Error(t, err)
	})

	t.Run("prose instead of json", func(t *testing.T) {
		_, err := parseStringList("Here are your questions:\n1. What is ...")
		require.Error(t, err)
	})
}

func TestParseGradingResult(t *testing.T) {
	t.Run("valid scores", func(t *testing.T) {
		for _, raw := range []string{
			`{"score": 0, "markdown_score": "## Score: 0"}`,
			`{"score": 0.5, "markdown_score": "## Score: 0.5"}`,
			`{"score": 1, "markdown_score": "## Score: 1"}`,
		} {
			result, err := parseGradingResult(raw)
			require.NoError(t, err, raw)
			assert.NotEmpty(t, result.MarkdownScore)
		}
	})

	t.Run("missing markdown gets a default", func(t *testing.T) {
		result, err := parseGradingResult(`{"score": 0.5}`)
		require.NoError(t, err)
		assert.Equal(t, "## Score: 0.5", result.MarkdownScore)
	})

	t.Run("fenced object", func(t *testing.T) {
		result, err := parseGradingResult("```json\n{\"score\": 1}\n```")
		require.NoError(t, err)
		assert.Equal(t, float64(1), result.Score)
	})

	t.Run("scores outside the scale are rejected", func(t *testing.T) {
		for _, raw := range []string{
			`{"score": 0.75}`,
			`{"score": 2}`,
			`{"score": -0.5}`,
			`{"score": 100}`,
		} {
			_, err := parseGradingResult(raw)
			require.Error(t, err, raw)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := parseGradingResult("Score: 1")
		require.Error(t, err)
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `["a"]`, stripCodeFence(`["a"]`))
	assert.Equal(t, `["a"]`, stripCodeFence("```json\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, stripCodeFence("```\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, stripCodeFence("  ```json\n[\"a\"]\n```  "))
}
