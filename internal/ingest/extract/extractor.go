// Package extract turns a URL into normalized article content using a
// readability-style extractor. Extraction failure is recoverable: callers
// fall back to feed-supplied text rather than discarding the item.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

// Extractor fetches and parses one article page.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*domain.ExtractedContent, error)
}

type webExtractor struct {
	fetcher *WebFetcher
}

func New(fetcher *WebFetcher) Extractor {
	return &webExtractor{fetcher: fetcher}
}

func (e *webExtractor) Extract(ctx context.Context, rawURL string) (*domain.ExtractedContent, error) {
	body, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", apperrors.ErrExtraction, rawURL, err)
	}

	content, err := Parse(body, rawURL)
	if err != nil {
		return nil, err
	}

	return content, nil
}

// Parse extracts normalized content from an already-fetched page. Split from
// Extract so it is testable without network access.
func Parse(htmlBody []byte, rawURL string) (*domain.ExtractedContent, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url %s: %v", apperrors.ErrExtraction, rawURL, err)
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBody), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: readability %s: %v", apperrors.ErrExtraction, rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, fmt.Errorf("%w: empty body %s", apperrors.ErrExtraction, rawURL)
	}

	content := &domain.ExtractedContent{
		URL:       rawURL,
		Title:     article.Title,
		Text:      text,
		HTML:      string(htmlBody),
		Author:    strings.TrimSpace(article.Byline),
		MainImage: article.Image,
	}

	fillFallbacks(content, htmlBody)

	return content, nil
}

// fillFallbacks resolves author and main image from the raw document when
// readability found neither: og:image then first <img> for the image,
// the author meta tag then a byline selector for the author.
func fillFallbacks(content *domain.ExtractedContent, htmlBody []byte) {
	if content.Author != "" && content.MainImage != "" {
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return
	}

	if content.MainImage == "" {
		content.MainImage = findMainImage(doc)
	}

	if content.Author == "" {
		content.Author = findAuthor(doc)
	}
}

func findMainImage(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && og != "" {
		return og
	}

	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		return src
	}

	return ""
}

func findAuthor(doc *goquery.Document) string {
	if meta, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok && strings.TrimSpace(meta) != "" {
		return strings.TrimSpace(meta)
	}

	byline := doc.Find(`.byline, .author, [rel="author"]`).First().Text()

	return strings.TrimSpace(byline)
}
