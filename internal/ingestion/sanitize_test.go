package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBody_PlainTextPassesThrough(t *testing.T) {
	in := "El festival gastronómico llega a Medellín.\n\nHabrá chefs invitados."
	assert.Equal(t, in, SanitizeBody(in))
}

func TestSanitizeBody_StripsHTML(t *testing.T) {
	in := `<article><p>El concierto será el <b>15 de noviembre</b>.</p>
<script>trackPageview();</script>
<p>Se esperan 45 mil personas.</p></article>`

	out := SanitizeBody(in)
	assert.Contains(t, out, "El concierto será el 15 de noviembre.")
	assert.Contains(t, out, "Se esperan 45 mil personas.")
	assert.NotContains(t, out, "trackPageview")
	assert.NotContains(t, out, "<p>")
}

func TestSanitizeBody_DropsPageChrome(t *testing.T) {
	in := `<div><nav><li>Inicio</li><li>Deportes</li></nav>
<p>La maratón recorrerá la ciudad.</p>
<footer><p>Todos los derechos reservados</p></footer></div>`

	out := SanitizeBody(in)
	assert.Contains(t, out, "La maratón recorrerá la ciudad.")
	assert.NotContains(t, out, "Inicio")
	assert.NotContains(t, out, "derechos reservados")
}

func TestSanitizeBody_ParagraphBoundariesSurvive(t *testing.T) {
	in := `<p>Primera frase.</p><p>Segunda frase.</p>`
	out := SanitizeBody(in)
	assert.Equal(t, "Primera frase.\nSegunda frase.", out)
}

func TestSanitizeBody_NormalizesWhitespace(t *testing.T) {
	in := "Línea   con    espacios\r\n\r\n\r\n\r\nOtra línea\t\ttabulada"
	out := SanitizeBody(in)
	assert.Equal(t, "Línea con espacios\n\nOtra línea tabulada", out)
}

func TestSanitizeBody_DecodesEntities(t *testing.T) {
	out := SanitizeBody("caf&eacute;s &amp; restaurantes&nbsp;abiertos")
	assert.Contains(t, out, "& restaurantes abiertos")
}

func TestNormalize(t *testing.T) {
	raw := RawArticle{
		Title:       "  Gran concierto  ",
		Body:        "<p>El concierto llega a la ciudad.</p>",
		Source:      "el-tiempo",
		PublishedAt: time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC),
	}
	art, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Gran concierto", art.Title)
	assert.Equal(t, "El concierto llega a la ciudad.", art.Body)
	assert.NotEqual(t, "", art.ID.String())
	assert.Equal(t, raw.PublishedAt, art.PublishedAt)
}

func TestNormalize_EmptyBodyFails(t *testing.T) {
	_, err := Normalize(RawArticle{Title: "Sin cuerpo", Body: "<script>x()</script>"})
	assert.Error(t, err)
}

func TestNormalize_ZeroPublishedAtDefaultsToNow(t *testing.T) {
	art, err := Normalize(RawArticle{Body: "Texto del artículo."})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), art.PublishedAt, time.Minute)
}
