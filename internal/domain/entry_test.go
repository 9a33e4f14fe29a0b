package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_KeyAndNumber(t *testing.T) {
	tests := []struct {
		name   string
		page   Page
		isSet  bool
		key    string
		number float64
	}{
		{name: "absent", page: nil, isSet: false, key: "", number: 0},
		{name: "null", page: Page("null"), isSet: false, key: "", number: 0},
		{name: "integer", page: Page("3"), isSet: true, key: "3", number: 3},
		{name: "integer written as float", page: Page("3.0"), isSet: true, key: "3", number: 3},
		{name: "fraction", page: Page("1.5"), isSet: true, key: "1.5", number: 1.5},
		{name: "numeric text", page: Page(`"12"`), isSet: true, key: "12", number: 12},
		{name: "text", page: Page(`"intro"`), isSet: true, key: "intro", number: 0},
		{name: "empty text", page: Page(`""`), isSet: true, key: "", number: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSet, tt.page.IsSet())
			assert.Equal(t, tt.key, tt.page.Key())
			assert.Equal(t, tt.number, tt.page.Number())
		})
	}
}

func TestPageFromKey(t *testing.T) {
	assert.Nil(t, PageFromKey("  "))
	assert.Equal(t, Page("4"), PageFromKey("4"))
	assert.Equal(t, Page(`"intro"`), PageFromKey("intro"))
}

func TestVocabEntry_JSON(t *testing.T) {
	var entry VocabEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "word": "cat", "page": "2"}`), &entry))
	assert.Equal(t, int64(7), entry.ID)
	assert.Equal(t, "2", entry.Page.Key())

	data, err := json.Marshal(VocabEntry{ID: 1, Word: "dog"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "page")

	data, err = json.Marshal(VocabEntry{ID: 1, Word: "dog", Page: NumberPage(2)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"page":2`)
}

func TestDirection_Valid(t *testing.T) {
	assert.True(t, WordToTranslation.Valid())
	assert.True(t, TranslationToWord.Valid())
	assert.False(t, Direction("sideways").Valid())
}
