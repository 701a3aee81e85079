package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"wordtrainer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.GreaterOrEqual(t, len(c.Words), 2*domain.DailyWordCount)
	assert.NotEmpty(t, c.Phrases)

	ids := map[int]bool{}
	for _, w := range c.Words {
		assert.False(t, ids[w.ID], "duplicate id %d", w.ID)
		ids[w.ID] = true
		assert.NotEmpty(t, w.English)
		assert.NotEmpty(t, w.Translation)
	}

	c.Words[0].English = "changed"
	assert.NotEqual(t, "changed", Default().Words[0].English)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name          string
		content       string
		expectedWords int
		expectedError bool
	}{
		{
			name:          "valid file",
			content:       `[{"id":1,"english":"cat","translation":"mushuk"},{"id":2,"english":"dog","translation":"it"}]`,
			expectedWords: 2,
		},
		{
			name:          "invalid json",
			content:       `[{"id":1`,
			expectedError: true,
		},
		{
			name:          "duplicate id",
			content:       `[{"id":1,"english":"cat","translation":"mushuk"},{"id":1,"english":"dog","translation":"it"}]`,
			expectedError: true,
		},
		{
			name:          "missing translation",
			content:       `[{"id":1,"english":"cat"}]`,
			expectedError: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "words"+string(rune('a'+i))+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			c, err := Load(path)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Words, tt.expectedWords)
			assert.NotEmpty(t, c.Phrases)
		})
	}
}

func TestLoad_EmptyPathAndMissingFile(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Words, c.Words)

	_, err = Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestGrammar(t *testing.T) {
	c := Default()

	ids := map[int]bool{}
	for _, level := range domain.GrammarLevels {
		questions := c.Grammar(level)
		require.Len(t, questions, 5, "level %s", level)
		for _, q := range questions {
			assert.NoError(t, q.Validate())
			assert.Len(t, q.Options, 4)
			assert.NotEmpty(t, q.Explanation)
			assert.False(t, ids[q.ID], "duplicate id %d", q.ID)
			ids[q.ID] = true
		}
	}

	assert.Empty(t, c.Grammar("expert"))

	questions := c.Grammar(domain.GrammarBeginner)
	questions[0].Options[0] = "changed"
	assert.Equal(t, "go", c.Grammar(domain.GrammarBeginner)[0].Options[0])
}
