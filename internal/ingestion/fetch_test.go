package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>El Colombiano - Noticias</title>
<meta property="og:title" content="Festival gastronómico llega a Medellín">
<meta property="og:site_name" content="El Colombiano">
<meta property="article:section" content="Cultura">
<meta property="article:published_time" content="2026-08-01T10:00:00Z">
</head>
<body>
<nav>Menú del sitio</nav>
<h1>Festival gastronómico llega a Medellín</h1>
<p>La ciudad recibirá un festival gastronómico este fin de semana.</p>
<footer>Todos los derechos reservados</footer>
</body>
</html>`

func TestParseArticleHTML(t *testing.T) {
	raw, err := ParseArticleHTML(articlePage)
	require.NoError(t, err)

	assert.Equal(t, "Festival gastronómico llega a Medellín", raw.Title)
	assert.Equal(t, "El Colombiano", raw.Source)
	assert.Equal(t, "Cultura", raw.SourceSection)
	assert.Equal(t, 2026, raw.PublishedAt.Year())
}

func TestParseArticleHTML_FallsBackToHeading(t *testing.T) {
	raw, err := ParseArticleHTML(`<html><head><title>Portada</title></head><body><h1>Concierto en el estadio</h1></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Concierto en el estadio", raw.Title)
	assert.True(t, raw.PublishedAt.IsZero())
}

func TestFetchArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "NewsRadarBot")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	raw, err := FetchArticle(context.Background(), srv.URL+"/cultura/festival", nil)
	require.NoError(t, err)

	assert.Equal(t, "Festival gastronómico llega a Medellín", raw.Title)
	assert.Equal(t, srv.URL+"/cultura/festival", raw.URL)
	assert.Equal(t, "El Colombiano", raw.Source)

	// The fetched page normalizes into a clean article.
	article, err := Normalize(*raw)
	require.NoError(t, err)
	assert.Contains(t, article.Body, "festival gastronómico este fin de semana")
	assert.NotContains(t, article.Body, "Menú del sitio")
}

func TestFetchArticle_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchArticle(context.Background(), srv.URL+"/missing", nil)
	require.Error(t, err)
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)

	_, err = FetchArticle(context.Background(), "not-a-url", nil)
	assert.Error(t, err)
}
