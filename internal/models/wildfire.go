package models

// ArcGISQueryResponse is the feature-service query payload returned by the
// BC Wildfire Service point layer.
type ArcGISQueryResponse struct {
	Features []ArcGISFeature `json:"features"`
	Error    *ArcGISError    `json:"error,omitempty"`
}

// ArcGISError is the in-band error envelope some feature services return
// with HTTP 200.
type ArcGISError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ArcGISFeature is one fire record with its point geometry.
type ArcGISFeature struct {
	Attributes ArcGISFireAttributes `json:"attributes"`
	Geometry   *ArcGISPoint         `json:"geometry"`
}

// ArcGISFireAttributes carries the fire fields the app renders. All fields
// are optional in the upstream schema; pointers keep absent values
// distinguishable so the fetcher can substitute placeholders.
type ArcGISFireAttributes struct {
	FireNumber            *string  `json:"FIRE_NUMBER"`
	FireStatus            *string  `json:"FIRE_STATUS"`
	GeographicDescription *string  `json:"GEOGRAPHIC_DESCRIPTION"`
	FireType              *string  `json:"FIRE_TYPE"`
	FireSizeHectares      *float64 `json:"FIRE_SIZE_HECTARES"`
}

// ArcGISPoint is an esriGeometryPoint in the layer's spatial reference.
type ArcGISPoint struct {
	X float64 `json:"x"` // longitude
	Y float64 `json:"y"` // latitude
}

// WFSFeatureCollection is the GetFeature payload from the BC Geographic
// Warehouse WFS endpoint, GeoJSON-shaped.
type WFSFeatureCollection struct {
	Type     string       `json:"type"`
	Features []WFSFeature `json:"features"`
}

// WFSFeature is one fire feature. Properties differ per typeName and are
// only loosely typed upstream, so they are decoded into the tagged Value
// form and read through its accessors at the fallback boundary.
type WFSFeature struct {
	Properties map[string]Value `json:"properties"`
	Geometry   WFSGeometry      `json:"geometry"`
}

// WFSGeometry is a GeoJSON geometry; only Point is expected here.
type WFSGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}
