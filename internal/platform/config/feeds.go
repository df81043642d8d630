package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskwire/riskwire/internal/core/domain"
)

const (
	feedFieldName       = 0
	feedFieldURL        = 1
	feedFieldCategory   = 2
	feedFieldRegulatory = 3

	feedFieldsRequired = 2
)

// defaultFeeds is the built-in P&C trade and regulator feed list, used when
// FEEDS is not set.
var defaultFeeds = []domain.Feed{
	{Name: "Insurance Journal", URL: "https://www.insurancejournal.com/rss/news/national.xml", Category: "trade"},
	{Name: "Claims Journal", URL: "https://www.claimsjournal.com/rss/news.xml", Category: "claims"},
	{Name: "Reinsurance News", URL: "https://www.reinsurancene.ws/feed/", Category: "reinsurance"},
	{Name: "Artemis", URL: "https://www.artemis.bm/feed/", Category: "ils"},
	{Name: "NAIC Newsroom", URL: "https://content.naic.org/rss.xml", Category: "regulatory", Regulatory: true},
	{Name: "NY DFS", URL: "https://www.dfs.ny.gov/rss/press_releases.xml", Category: "regulatory", Regulatory: true},
}

// ParseFeeds converts the raw FEEDS entries into feed definitions. Each entry
// has the form "Name|URL|category|regulatory" with regulatory optional.
// Returns the default list when no entries are configured.
func (c *Config) ParseFeeds() ([]domain.Feed, error) {
	if len(c.Ingest.Feeds) == 0 {
		return defaultFeeds, nil
	}

	feeds := make([]domain.Feed, 0, len(c.Ingest.Feeds))

	for _, raw := range c.Ingest.Feeds {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		feed, err := parseFeedEntry(raw)
		if err != nil {
			return nil, err
		}

		feeds = append(feeds, feed)
	}

	if len(feeds) == 0 {
		return defaultFeeds, nil
	}

	return feeds, nil
}

func parseFeedEntry(raw string) (domain.Feed, error) {
	parts := strings.Split(raw, "|")
	if len(parts) < feedFieldsRequired || strings.TrimSpace(parts[feedFieldName]) == "" || strings.TrimSpace(parts[feedFieldURL]) == "" {
		return domain.Feed{}, fmt.Errorf("invalid feed entry %q: expected Name|URL[|category[|regulatory]]", raw)
	}

	feed := domain.Feed{
		Name: strings.TrimSpace(parts[feedFieldName]),
		URL:  strings.TrimSpace(parts[feedFieldURL]),
	}

	if len(parts) > feedFieldCategory {
		feed.Category = strings.TrimSpace(parts[feedFieldCategory])
	}

	if len(parts) > feedFieldRegulatory {
		regulatory, err := strconv.ParseBool(strings.TrimSpace(parts[feedFieldRegulatory]))
		if err != nil {
			return domain.Feed{}, fmt.Errorf("invalid feed entry %q: bad regulatory flag: %w", raw, err)
		}

		feed.Regulatory = regulatory
	}

	return feed, nil
}
