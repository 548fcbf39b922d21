package service

import (
	"sort"
	"strings"

	"campuspool/internal/models"
)

const (
	legSubstringScore = 50
	legTokenScore     = 25

	// RecommendedMinScore is the score at or above which a ride is flagged
	// as recommended for the search.
	RecommendedMinScore = 25
)

// MatchScore ranks a ride against a free-text source/destination search.
// Each leg contributes 50 for a case-insensitive substring match (either
// direction), else 25 when any whitespace token of the search term appears
// in the ride's leg. Possible totals: 0, 25, 50, 75, 100.
func MatchScore(rideSource, rideDestination, searchSource, searchDestination string) int {
	return legScore(rideSource, searchSource) + legScore(rideDestination, searchDestination)
}

func legScore(rideLeg, searchTerm string) int {
	searchTerm = strings.TrimSpace(strings.ToLower(searchTerm))
	if searchTerm == "" {
		return 0
	}
	rideLeg = strings.ToLower(rideLeg)

	if strings.Contains(rideLeg, searchTerm) || strings.Contains(searchTerm, rideLeg) {
		return legSubstringScore
	}
	for _, token := range strings.Fields(searchTerm) {
		if strings.Contains(rideLeg, token) {
			return legTokenScore
		}
	}
	return 0
}

type ScoredRide struct {
	Ride        models.Ride
	Score       int
	Recommended bool
}

// RankRides scores every ride against the search and orders the result by
// descending score, breaking ties on ascending departure time.
func RankRides(rides []models.Ride, searchSource, searchDestination string) []ScoredRide {
	scored := make([]ScoredRide, 0, len(rides))
	for _, ride := range rides {
		score := MatchScore(ride.Source, ride.Destination, searchSource, searchDestination)
		scored = append(scored, ScoredRide{
			Ride:        ride,
			Score:       score,
			Recommended: score >= RecommendedMinScore,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Ride.DepartureTime().Before(scored[j].Ride.DepartureTime())
	})
	return scored
}
