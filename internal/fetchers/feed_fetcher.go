package fetchers

import (
	"context"
	"fmt"

	"wildwatch/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

const feedSource = "Environment Canada"

// FeedFetcher retrieves the fixed regional government alert feed. The feed
// is not queried by geography; the coordinate only tags resulting alerts so
// they render at the map center.
type FeedFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewFeedFetcher creates a new feed fetcher instance.
func NewFeedFetcher(client *resty.Client, parser *gofeed.Parser) *FeedFetcher {
	return &FeedFetcher{client: client, parser: parser}
}

// Fetch downloads and parses the battleboard feed, classifying each item by
// its title. A malformed or unreachable feed is an error for the caller to
// absorb; it never partially succeeds.
func (f *FeedFetcher) Fetch(ctx context.Context, url string, coord models.Coordinate) ([]models.Alert, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, networkErr(feedSource, err)
	}
	if resp.StatusCode() != 200 {
		return nil, networkErr(feedSource, fmt.Errorf("status %d", resp.StatusCode()))
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, decodeErr(feedSource, err)
	}

	var alerts []models.Alert
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		alerts = append(alerts, models.Alert{
			ID:          newAlertID(),
			Coordinate:  coord,
			Category:    ClassifyTitle(item.Title),
			Description: fmt.Sprintf("%s: %s", item.Title, item.Description),
			Source:      feedSource,
		})
	}

	return alerts, nil
}
