package fetchers

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// DataFetcher bundles the leaf fetchers for all external sources behind one
// shared HTTP client.
type DataFetcher struct {
	client   *resty.Client
	Weather  *WeatherFetcher
	Feed     *FeedFetcher
	Wildfire *WildfireFetcher
}

// NewDataFetcher creates a new data fetcher instance. The client carries no
// retry policy: a failed source degrades to zero alerts for this cycle and
// the next refresh tries again.
func NewDataFetcher() *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &DataFetcher{
		client:   client,
		Weather:  NewWeatherFetcher(client),
		Feed:     NewFeedFetcher(client, gofeed.NewParser()),
		Wildfire: NewWildfireFetcher(client),
	}
}

// newAlertID generates an opaque unique alert identifier.
func newAlertID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
