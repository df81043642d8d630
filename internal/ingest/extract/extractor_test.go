package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

func articleHTML(body string) string {
	return `<html><head>
<title>Carrier posts record combined ratio</title>
<meta name="author" content="Jane Reporter"/>
<meta property="og:image" content="https://example.com/hero.jpg"/>
</head><body>
<article>
<h1>Carrier posts record combined ratio</h1>
<p class="byline">By Jane Reporter</p>
` + body + `
</article>
</body></html>`
}

func paragraphs(n int) string {
	var sb strings.Builder

	for i := 0; i < n; i++ {
		sb.WriteString("<p>The carrier reported a combined ratio improvement across personal lines, driven by rate increases earned through the year and a quiet catastrophe quarter in its core states.</p>\n")
	}

	return sb.String()
}

func TestParse_FullArticle(t *testing.T) {
	content, err := Parse([]byte(articleHTML(paragraphs(6))), "https://example.com/news/q3")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/news/q3", content.URL)
	assert.Contains(t, content.Title, "combined ratio")
	assert.Contains(t, content.Text, "rate increases")
	assert.NotEmpty(t, content.HTML)
	assert.Equal(t, "https://example.com/hero.jpg", content.MainImage)
	assert.NotEmpty(t, content.Author)
}

func TestParse_AuthorMetaFallback(t *testing.T) {
	// No byline element; author must come from the meta tag.
	page := `<html><head><meta name="author" content="Wire Desk"/></head><body><article>` +
		paragraphs(6) + `</article></body></html>`

	content, err := Parse([]byte(page), "https://example.com/news/wire")
	require.NoError(t, err)
	assert.Equal(t, "Wire Desk", content.Author)
}

func TestParse_FirstImageFallback(t *testing.T) {
	page := `<html><head></head><body><article><img src="/img/chart.png"/>` +
		paragraphs(6) + `</article></body></html>`

	content, err := Parse([]byte(page), "https://example.com/news/chart")
	require.NoError(t, err)
	assert.Contains(t, content.MainImage, "chart.png")
}

func TestParse_InvalidURL(t *testing.T) {
	_, err := Parse([]byte("<html></html>"), "://bad")
	require.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestParse_EmptyBody(t *testing.T) {
	_, err := Parse([]byte("<html><head></head><body></body></html>"), "https://example.com/empty")
	require.ErrorIs(t, err, apperrors.ErrExtraction)
}
