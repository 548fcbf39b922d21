package service

import (
	"testing"
	"time"

	"campuspool/internal/config"
)

func testTrustConfig() config.TrustConfig {
	return config.TrustConfig{
		NewUserMaxRides:   4,
		LowRatingBelow:    2.5,
		TrustedMinRides:   5,
		TrustedMinRating:  4.0,
		CO2PerKm:          0.21,
		AvgRideDistanceKm: 8,
		CostPerKmSolo:     12,
		SavingsFactor:     0.5,
		StreakLookback:    60 * 24 * time.Hour,
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != nil {
		t.Fatalf("expected nil average for no ratings, got %v", *got)
	}
	got := AverageRating([]int{4, 5})
	if got == nil || *got != 4.5 {
		t.Fatalf("expected 4.5, got %v", got)
	}
	got = AverageRating([]int{5, 4, 4})
	if got == nil || *got != 4.33 {
		t.Fatalf("expected 4.33, got %v", got)
	}
}

func TestTrustLabelOrdering(t *testing.T) {
	calc := NewTrustCalculator(testTrustConfig())
	low := 2.0
	high := 4.5
	mid := 3.5

	tests := []struct {
		name      string
		rideCount int
		avg       *float64
		want      TrustLevel
	}{
		{"zero rides", 0, nil, TrustLevelNew},
		{"few rides beats low rating", 3, &low, TrustLevelNew},
		{"low rating", 10, &low, TrustLevelLow},
		{"trusted", 6, &high, TrustLevelTrusted},
		{"enough rides but unrated", 6, nil, TrustLevelRegular},
		{"middling rating", 6, &mid, TrustLevelRegular},
		{"exactly at new threshold", 4, nil, TrustLevelRegular},
	}
	for _, tc := range tests {
		if got := calc.Label(tc.rideCount, tc.avg); got.Level != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got.Level)
		}
	}
}

func TestStreaks(t *testing.T) {
	calc := NewTrustCalculator(testTrustConfig())
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	got := calc.Streaks(nil, now)
	if got.Current != 0 || got.Longest != 0 {
		t.Fatalf("expected zero streaks for no dates, got %+v", got)
	}

	got = calc.Streaks([]string{"2026-03-10", "2026-03-09", "2026-03-08"}, now)
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("expected 3/3, got %+v", got)
	}

	// Gap before today breaks the current streak but not the longest.
	got = calc.Streaks([]string{"2026-03-10", "2026-03-08", "2026-03-07", "2026-03-06"}, now)
	if got.Current != 1 || got.Longest != 3 {
		t.Fatalf("expected 1/3, got %+v", got)
	}

	// A streak ending yesterday still counts as current.
	got = calc.Streaks([]string{"2026-03-09", "2026-03-08"}, now)
	if got.Current != 2 || got.Longest != 2 {
		t.Fatalf("expected 2/2, got %+v", got)
	}

	// A streak ending two days ago does not.
	got = calc.Streaks([]string{"2026-03-08", "2026-03-07"}, now)
	if got.Current != 0 || got.Longest != 2 {
		t.Fatalf("expected 0/2, got %+v", got)
	}

	// Duplicate dates count once.
	got = calc.Streaks([]string{"2026-03-10", "2026-03-10", "2026-03-09"}, now)
	if got.Current != 2 || got.Longest != 2 {
		t.Fatalf("expected 2/2 with duplicates, got %+v", got)
	}
}

func TestSavings(t *testing.T) {
	calc := NewTrustCalculator(testTrustConfig())

	got := calc.Savings(10)
	if got.TotalDistanceKm != 80 {
		t.Fatalf("expected 80km, got %v", got.TotalDistanceKm)
	}
	if got.CO2SavedKg != 16.8 {
		t.Fatalf("expected 16.8kg, got %v", got.CO2SavedKg)
	}
	if got.MoneySaved != 480 {
		t.Fatalf("expected 480, got %v", got.MoneySaved)
	}

	if zero := calc.Savings(0); zero.MoneySaved != 0 || zero.CO2SavedKg != 0 {
		t.Fatalf("expected zero savings, got %+v", zero)
	}
}

func TestBadges(t *testing.T) {
	calc := NewTrustCalculator(testTrustConfig())

	savings := calc.Savings(5)
	earned := calc.Badges(5, savings, 7)

	ids := make(map[string]bool, len(earned))
	for _, b := range earned {
		if !b.Earned {
			t.Fatalf("badge %s returned unearned", b.ID)
		}
		ids[b.ID] = true
	}

	for _, want := range []string{"first_ride", "rides_5", "streak_7"} {
		if !ids[want] {
			t.Fatalf("expected badge %s, earned %v", want, ids)
		}
	}
	for _, unwanted := range []string{"rides_10", "eco_warrior", "saver_500"} {
		if ids[unwanted] {
			t.Fatalf("did not expect badge %s", unwanted)
		}
	}
}
