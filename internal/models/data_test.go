package models

import "testing"

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"vancouver", Coordinate{Latitude: 49.28, Longitude: -123.12}, true},
		{"poles", Coordinate{Latitude: 90, Longitude: 180}, true},
		{"lat out of range", Coordinate{Latitude: 90.01, Longitude: 0}, false},
		{"lon out of range", Coordinate{Latitude: 0, Longitude: -180.5}, false},
	}

	for _, tc := range cases {
		if got := tc.coord.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsActiveFire(t *testing.T) {
	cases := []struct {
		name  string
		alert Alert
		want  bool
	}{
		{
			"out of control fire",
			Alert{Category: CategoryFire, Description: "Fire #123 - Out of Control\nLocation: X"},
			true,
		},
		{
			"holding fire",
			Alert{Category: CategoryFire, Description: "Fire #G41234 - Holding\nLocation: Fraser Canyon"},
			true,
		},
		{
			"under control fire",
			Alert{Category: CategoryFire, Description: "Fire #C10987 - Under Control\nLocation: Cariboo"},
			true,
		},
		{
			"extinguished fire",
			Alert{Category: CategoryFire, Description: "Fire #123 - Extinguished\nLocation: X"},
			false,
		},
		{
			"out status is not active",
			Alert{Category: CategoryFire, Description: "Fire #123 - Out\nLocation: X"},
			false,
		},
		{
			"non-fire alert with fire wording",
			Alert{Category: CategoryOther, Description: "Smoke from a fire Out of Control nearby"},
			false,
		},
	}

	for _, tc := range cases {
		if got := tc.alert.IsActiveFire(); got != tc.want {
			t.Errorf("%s: IsActiveFire() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasThunder(t *testing.T) {
	snap := &WeatherSnapshot{
		Conditions: []WeatherCondition{
			{Description: "scattered clouds", Icon: "03d"},
			{Description: "Thunderstorm with light rain", Icon: "11d"},
		},
	}
	if !snap.HasThunder() {
		t.Error("expected HasThunder() = true for thunderstorm descriptor")
	}

	snap = &WeatherSnapshot{
		Conditions: []WeatherCondition{{Description: "clear sky", Icon: "01d"}},
	}
	if snap.HasThunder() {
		t.Error("expected HasThunder() = false for clear sky")
	}
}

func TestActiveFireCount(t *testing.T) {
	report := ConditionsReport{
		Alerts: []Alert{
			{Category: CategoryFire, Description: "Fire #1 - Out of Control\nLocation: A"},
			{Category: CategoryFire, Description: "Fire #2 - Out\nLocation: B"},
			{Category: CategoryThunderstorm, Description: "Severe Thunderstorm Warning: ..."},
			{Category: CategoryFire, Description: "Fire #3 - Holding\nLocation: C"},
		},
	}
	if got := report.ActiveFireCount(); got != 2 {
		t.Errorf("ActiveFireCount() = %d, want 2", got)
	}
}
