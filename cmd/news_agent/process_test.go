package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputArticles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	content := `[
		{
			"title": "Festival gastronómico en Medellín",
			"body": "<p>La ciudad recibe un festival gastronómico este fin de semana.</p>",
			"url": "https://example.com/festival",
			"source": "El Colombiano",
			"published_at": "2026-08-01T10:00:00Z"
		},
		{
			"title": "Artículo sin cuerpo",
			"body": ""
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	articles, err := loadInputArticles(path)
	require.NoError(t, err)

	// The empty-body article is skipped with a warning, not fatal.
	require.Len(t, articles, 1)
	assert.Equal(t, "Festival gastronómico en Medellín", articles[0].Title)
	assert.NotContains(t, articles[0].Body, "<p>")
	assert.Equal(t, "https://example.com/festival", articles[0].URL)
	assert.NotEqual(t, "", articles[0].ID.String())
}

func TestLoadInputArticlesErrors(t *testing.T) {
	_, err := loadInputArticles(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = loadInputArticles(path)
	assert.Error(t, err)
}
