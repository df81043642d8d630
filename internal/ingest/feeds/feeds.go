// Package feeds is the RSS collaborator: given a configured feed it returns
// an ordered list of items, in feed order.
package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/riskwire/riskwire/internal/core/domain"
	"github.com/riskwire/riskwire/internal/platform/htmlutils"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 riskwire/1.0"

// Fetcher retrieves and parses one feed.
type Fetcher interface {
	Fetch(ctx context.Context, feed domain.Feed) ([]domain.FeedItem, error)
}

type fetcher struct {
	parser *gofeed.Parser
}

func New() Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &fetcher{parser: parser}
}

func (f *fetcher) Fetch(ctx context.Context, feed domain.Feed) ([]domain.FeedItem, error) {
	parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		items = append(items, domain.FeedItem{
			FeedName:     feed.Name,
			FeedCategory: feed.Category,
			Regulatory:   feed.Regulatory,
			Title:        item.Title,
			Link:         item.Link,
			Content:      itemContent(item),
			PublishedAt:  itemPublished(item),
		})
	}

	return items, nil
}

// itemContent prefers the full content element over the description snippet,
// with markup stripped so the result is usable as an extraction fallback body.
func itemContent(item *gofeed.Item) string {
	if item.Content != "" {
		return htmlutils.StripHTMLTags(item.Content)
	}

	return htmlutils.StripHTMLTags(item.Description)
}

// itemPublished resolves the publish timestamp, tolerating the sloppy date
// formats real-world feeds emit. Zero when nothing parses; the orchestrator
// substitutes the run time.
func itemPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}

	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
	}

	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}

	return time.Time{}
}
