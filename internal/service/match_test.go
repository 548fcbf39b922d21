package service

import (
	"testing"

	"campuspool/internal/models"
)

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name        string
		rideSrc     string
		rideDst     string
		searchSrc   string
		searchDst   string
		want        int
	}{
		{"exact both legs", "Campus Main Gate", "Indiranagar", "campus", "indiranagar", 100},
		{"substring one leg", "Campus Main Gate", "Indiranagar", "campus", "", 50},
		{"token only", "Campus Main Gate", "Whitefield", "gate road", "", 25},
		{"no match", "Campus Main Gate", "Whitefield", "airport", "majestic", 0},
		{"empty search", "Campus Main Gate", "Whitefield", "", "", 0},
		{"search contains leg", "Gate", "Whitefield", "main gate area", "", 50},
		{"mixed", "Campus", "Whitefield Tech Park", "campus", "tech hub", 75},
	}
	for _, tc := range tests {
		got := MatchScore(tc.rideSrc, tc.rideDst, tc.searchSrc, tc.searchDst)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRankRides(t *testing.T) {
	rides := []models.Ride{
		{Source: "Hostel", Destination: "Airport", Date: "2026-04-01", Time: "10:00"},
		{Source: "Campus", Destination: "Indiranagar", Date: "2026-04-01", Time: "09:00"},
		{Source: "Campus", Destination: "Whitefield", Date: "2026-04-01", Time: "08:00"},
	}

	ranked := RankRides(rides, "campus", "indiranagar")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 scored rides, got %d", len(ranked))
	}
	if ranked[0].Score != 100 || ranked[0].Ride.Destination != "Indiranagar" {
		t.Fatalf("expected full match first, got %+v", ranked[0])
	}
	if ranked[1].Score != 50 || ranked[1].Ride.Destination != "Whitefield" {
		t.Fatalf("expected partial match second, got %+v", ranked[1])
	}
	if ranked[2].Score != 0 || ranked[2].Recommended {
		t.Fatalf("expected zero-score ride last and not recommended, got %+v", ranked[2])
	}
	if !ranked[0].Recommended || !ranked[1].Recommended {
		t.Fatalf("expected scored rides to be recommended")
	}
}

func TestRankRidesTieBreaksOnDeparture(t *testing.T) {
	rides := []models.Ride{
		{Source: "Campus", Destination: "A", Date: "2026-04-01", Time: "12:00"},
		{Source: "Campus", Destination: "B", Date: "2026-04-01", Time: "08:00"},
	}

	ranked := RankRides(rides, "campus", "")
	if ranked[0].Ride.Destination != "B" {
		t.Fatalf("expected earlier departure first on tied score, got %s", ranked[0].Ride.Destination)
	}
}
