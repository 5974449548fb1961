package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"wildwatch/internal/models"

	"github.com/go-resty/resty/v2"
)

const weatherSource = "OpenWeatherMap"

// WeatherFetcher queries OpenWeatherMap current conditions for a coordinate.
type WeatherFetcher struct {
	client *resty.Client
}

// NewWeatherFetcher creates a new weather fetcher instance.
func NewWeatherFetcher(client *resty.Client) *WeatherFetcher {
	return &WeatherFetcher{client: client}
}

// Fetch retrieves current conditions. The decode is strict: a response
// missing any required field is rejected as a whole, so a snapshot is
// either complete or absent.
func (f *WeatherFetcher) Fetch(ctx context.Context, url, apiKey string, coord models.Coordinate) (*models.WeatherSnapshot, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
			"lon":   strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
			"units": "metric",
			"appid": apiKey,
		}).
		Get(url)

	if err != nil {
		return nil, networkErr(weatherSource, err)
	}
	if resp.StatusCode() != 200 {
		return nil, networkErr(weatherSource, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var data models.OpenWeatherResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, decodeErr(weatherSource, err)
	}

	return buildSnapshot(&data)
}

// buildSnapshot validates the response and converts it into an immutable
// snapshot. Every field the app renders is required.
func buildSnapshot(data *models.OpenWeatherResponse) (*models.WeatherSnapshot, error) {
	switch {
	case data.Main == nil:
		return nil, decodeErr(weatherSource, fmt.Errorf("missing main block"))
	case data.Main.Temp == nil || data.Main.Humidity == nil || data.Main.FeelsLike == nil:
		return nil, decodeErr(weatherSource, fmt.Errorf("incomplete main block"))
	case data.Wind == nil || data.Wind.Speed == nil || data.Wind.Deg == nil:
		return nil, decodeErr(weatherSource, fmt.Errorf("incomplete wind block"))
	case data.Coord == nil || data.Coord.Lat == nil || data.Coord.Lon == nil:
		return nil, decodeErr(weatherSource, fmt.Errorf("missing coord block"))
	case len(data.Weather) == 0:
		return nil, decodeErr(weatherSource, fmt.Errorf("empty weather list"))
	}

	conditions := make([]models.WeatherCondition, 0, len(data.Weather))
	for i, entry := range data.Weather {
		if entry.Description == nil || entry.Icon == nil {
			return nil, decodeErr(weatherSource, fmt.Errorf("incomplete weather entry %d", i))
		}
		conditions = append(conditions, models.WeatherCondition{
			Description: *entry.Description,
			Icon:        *entry.Icon,
		})
	}

	return &models.WeatherSnapshot{
		Temperature: *data.Main.Temp,
		FeelsLike:   *data.Main.FeelsLike,
		Humidity:    *data.Main.Humidity,
		WindSpeed:   *data.Wind.Speed,
		WindDegrees: *data.Wind.Deg,
		Conditions:  conditions,
		Coordinate: models.Coordinate{
			Latitude:  *data.Coord.Lat,
			Longitude: *data.Coord.Lon,
		},
		FetchedAt: time.Now().UTC(),
	}, nil
}
