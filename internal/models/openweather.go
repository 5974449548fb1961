package models

// OpenWeatherResponse mirrors the OpenWeatherMap current-conditions payload.
// Every field the snapshot needs is a pointer so that an absent field is
// distinguishable from a zero value; the weather fetcher rejects the whole
// response when any of them is nil.
type OpenWeatherResponse struct {
	Main    *OpenWeatherMain   `json:"main"`
	Weather []OpenWeatherEntry `json:"weather"`
	Wind    *OpenWeatherWind   `json:"wind"`
	Coord   *OpenWeatherCoord  `json:"coord"`
}

// OpenWeatherMain holds the temperature block of the response.
type OpenWeatherMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *float64 `json:"humidity"`
}

// OpenWeatherEntry is one textual condition descriptor.
type OpenWeatherEntry struct {
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// OpenWeatherWind holds wind speed and direction.
type OpenWeatherWind struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

// OpenWeatherCoord echoes the queried coordinate.
type OpenWeatherCoord struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}
