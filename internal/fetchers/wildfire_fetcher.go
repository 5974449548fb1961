package fetchers

import (
	"context"
	"encoding/json"
	"fmt"

	"wildwatch/internal/models"

	"github.com/go-resty/resty/v2"
)

const (
	wildfirePrimarySource  = "BC Wildfire Service"
	wildfireFallbackSource = "BC Government Data"

	// WildfireRadiusMeters is the search radius around the map center for
	// the primary feature-service query.
	WildfireRadiusMeters = 100000
	// FallbackBBoxDegrees is the half-width of the fallback bounding box.
	FallbackBBoxDegrees = 1.0
)

// wildfireStatusFilter is the fixed status set the feature service is
// queried for.
const wildfireStatusFilter = "FIRE_STATUS IN ('Out of Control','Holding','Under Control','Out')"

// WildfireFetcher queries fire incidents near a coordinate: the BC Wildfire
// Service feature service first, then the BC Geographic Warehouse WFS when
// the primary fails for any reason.
type WildfireFetcher struct {
	client *resty.Client
}

// NewWildfireFetcher creates a new wildfire fetcher instance.
func NewWildfireFetcher(client *resty.Client) *WildfireFetcher {
	return &WildfireFetcher{client: client}
}

// Fetch returns fire alerts near coord. The fallback fires only on primary
// failure, never to augment a primary result; an empty primary result is a
// valid answer.
func (f *WildfireFetcher) Fetch(ctx context.Context, primaryURL, fallbackURL, typeName string, coord models.Coordinate) ([]models.Alert, error) {
	alerts, primaryErr := f.fetchPrimary(ctx, primaryURL, coord)
	if primaryErr == nil {
		return alerts, nil
	}

	alerts, fallbackErr := f.fetchFallback(ctx, fallbackURL, typeName, coord)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary failed (%v), fallback failed: %w", primaryErr, fallbackErr)
	}
	return alerts, nil
}

// fetchPrimary queries the feature service for fires within the fixed
// radius of coord.
func (f *WildfireFetcher) fetchPrimary(ctx context.Context, url string, coord models.Coordinate) ([]models.Alert, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"where":          wildfireStatusFilter,
			"outFields":      "*",
			"geometryType":   "esriGeometryPoint",
			"spatialRel":     "esriSpatialRelWithin",
			"geometry":       fmt.Sprintf(`{"x":%f,"y":%f}`, coord.Longitude, coord.Latitude),
			"distance":       fmt.Sprintf("%d", WildfireRadiusMeters),
			"units":          "esriSRUnit_Meter",
			"inSR":           "4326",
			"outSR":          "4326",
			"f":              "json",
			"returnGeometry": "true",
		}).
		Get(url)

	if err != nil {
		return nil, networkErr(wildfirePrimarySource, err)
	}
	if resp.StatusCode() != 200 {
		return nil, networkErr(wildfirePrimarySource, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var data models.ArcGISQueryResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, decodeErr(wildfirePrimarySource, err)
	}
	if data.Error != nil {
		return nil, networkErr(wildfirePrimarySource, fmt.Errorf("service error %d: %s", data.Error.Code, data.Error.Message))
	}

	var alerts []models.Alert
	for _, feature := range data.Features {
		alerts = append(alerts, buildPrimaryAlert(feature, coord))
	}
	return alerts, nil
}

// buildPrimaryAlert converts one feature into a fire alert. Every attribute
// is optional upstream; absent values fall back to placeholders rather than
// dropping the record.
func buildPrimaryAlert(feature models.ArcGISFeature, center models.Coordinate) models.Alert {
	number := "Unknown"
	if feature.Attributes.FireNumber != nil {
		number = *feature.Attributes.FireNumber
	}
	status := "Unknown"
	if feature.Attributes.FireStatus != nil {
		status = *feature.Attributes.FireStatus
	}
	location := "Unknown Location"
	if feature.Attributes.GeographicDescription != nil {
		location = *feature.Attributes.GeographicDescription
	}
	fireType := "Unknown"
	if feature.Attributes.FireType != nil {
		fireType = *feature.Attributes.FireType
	}
	size := 0.0
	if feature.Attributes.FireSizeHectares != nil {
		size = *feature.Attributes.FireSizeHectares
	}

	coord := center
	if feature.Geometry != nil {
		coord = models.Coordinate{Latitude: feature.Geometry.Y, Longitude: feature.Geometry.X}
	}

	return models.Alert{
		ID:          newAlertID(),
		Coordinate:  coord,
		Category:    models.CategoryFire,
		Description: fireDescription(number, status, location, fireType, size),
		Source:      wildfirePrimarySource,
	}
}

// fetchFallback queries the WFS endpoint by bounding box. Its schema is
// stricter than the primary's: every property must be present or the whole
// response is rejected.
func (f *WildfireFetcher) fetchFallback(ctx context.Context, url, typeName string, coord models.Coordinate) ([]models.Alert, error) {
	bbox := fmt.Sprintf("%f,%f,%f,%f,EPSG:4326",
		coord.Longitude-FallbackBBoxDegrees,
		coord.Latitude-FallbackBBoxDegrees,
		coord.Longitude+FallbackBBoxDegrees,
		coord.Latitude+FallbackBBoxDegrees,
	)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"service":      "WFS",
			"version":      "2.0.0",
			"request":      "GetFeature",
			"typeName":     typeName,
			"outputFormat": "application/json",
			"srsName":      "EPSG:4326",
			"bbox":         bbox,
		}).
		Get(url)

	if err != nil {
		return nil, networkErr(wildfireFallbackSource, err)
	}
	if resp.StatusCode() != 200 {
		return nil, networkErr(wildfireFallbackSource, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var data models.WFSFeatureCollection
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, decodeErr(wildfireFallbackSource, err)
	}

	var alerts []models.Alert
	for i, feature := range data.Features {
		alert, err := buildFallbackAlert(feature, coord)
		if err != nil {
			return nil, decodeErr(wildfireFallbackSource, fmt.Errorf("feature %d: %w", i, err))
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func buildFallbackAlert(feature models.WFSFeature, center models.Coordinate) (models.Alert, error) {
	number, err := requiredString(feature.Properties, "FIRE_NUMBER")
	if err != nil {
		return models.Alert{}, err
	}
	status, err := requiredString(feature.Properties, "FIRE_STATUS")
	if err != nil {
		return models.Alert{}, err
	}
	location, err := requiredString(feature.Properties, "GEOGRAPHIC_DESCRIPTION")
	if err != nil {
		return models.Alert{}, err
	}
	fireType, err := requiredString(feature.Properties, "FIRE_TYPE")
	if err != nil {
		return models.Alert{}, err
	}
	size, err := requiredNumber(feature.Properties, "FIRE_SIZE_HECTARES")
	if err != nil {
		return models.Alert{}, err
	}

	coord := center
	if feature.Geometry.Type == "Point" && len(feature.Geometry.Coordinates) >= 2 {
		coord = models.Coordinate{
			Latitude:  feature.Geometry.Coordinates[1],
			Longitude: feature.Geometry.Coordinates[0],
		}
	}

	return models.Alert{
		ID:          newAlertID(),
		Coordinate:  coord,
		Category:    models.CategoryFire,
		Description: fireDescription(number, status, location, fireType, size),
		Source:      wildfireFallbackSource,
	}, nil
}

func requiredString(props map[string]models.Value, key string) (string, error) {
	v, ok := props[key]
	if !ok {
		return "", fmt.Errorf("missing property %s", key)
	}
	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("property %s is not a string", key)
	}
	return s, nil
}

func requiredNumber(props map[string]models.Value, key string) (float64, error) {
	v, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("missing property %s", key)
	}
	n, ok := v.Number()
	if !ok {
		return 0, fmt.Errorf("property %s is not a number", key)
	}
	return n, nil
}

// fireDescription renders the multi-line detail block shown on the map
// callout. Size is always one decimal place.
func fireDescription(number, status, location, fireType string, sizeHectares float64) string {
	return fmt.Sprintf("Fire #%s - %s\nLocation: %s\nType: %s\nSize: %.1f hectares",
		number, status, location, fireType, sizeHectares)
}
