package service

import (
	"math"
	"sort"
	"time"

	"campuspool/internal/catalog"
	"campuspool/internal/config"
	"campuspool/internal/models"
)

type TrustLevel string

const (
	TrustLevelNew     TrustLevel = "new_user"
	TrustLevelRegular TrustLevel = "regular"
	TrustLevelTrusted TrustLevel = "trusted"
	TrustLevelLow     TrustLevel = "low_rating"
)

type TrustLabel struct {
	Level TrustLevel `json:"level"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// TrustCalculator derives trust labels, streaks, badges and savings from a
// user's history. Everything here is a pure function of its inputs; the
// thresholds come from configuration.
type TrustCalculator struct {
	cfg config.TrustConfig
}

func NewTrustCalculator(cfg config.TrustConfig) *TrustCalculator {
	return &TrustCalculator{cfg: cfg}
}

// AverageRating returns the mean of the given rating values rounded to two
// decimals, or nil when the user has never been rated.
func AverageRating(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := math.Round(float64(sum)/float64(len(values))*100) / 100
	return &avg
}

// Label evaluates the trust rules in order: new user, low rating, trusted,
// regular. The order matters for edge values, so do not reorder.
func (c *TrustCalculator) Label(rideCount int, avgRating *float64) TrustLabel {
	switch {
	case rideCount < c.cfg.NewUserMaxRides:
		return TrustLabel{Level: TrustLevelNew, Label: "New User", Color: "gray"}
	case avgRating != nil && *avgRating < c.cfg.LowRatingBelow:
		return TrustLabel{Level: TrustLevelLow, Label: "Needs Review", Color: "red"}
	case avgRating != nil && rideCount >= c.cfg.TrustedMinRides && *avgRating >= c.cfg.TrustedMinRating:
		return TrustLabel{Level: TrustLevelTrusted, Label: "Trusted", Color: "green"}
	default:
		return TrustLabel{Level: TrustLevelRegular, Label: "Regular", Color: "blue"}
	}
}

// Streaks computes the current and longest run of consecutive completion
// dates. The current streak must end today or yesterday relative to now;
// dates are calendar dates in the ride date layout.
func (c *TrustCalculator) Streaks(dates []string, now time.Time) Streak {
	if len(dates) == 0 {
		return Streak{}
	}

	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		parsed, err := time.Parse(models.RideDateLayout, d)
		if err != nil {
			continue
		}
		key := parsed.Format(models.RideDateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, parsed)
	}
	if len(days) == 0 {
		return Streak{}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	anchor := today
	if _, ok := seen[anchor.Format(models.RideDateLayout)]; !ok {
		anchor = today.AddDate(0, 0, -1)
		if _, ok := seen[anchor.Format(models.RideDateLayout)]; !ok {
			return Streak{Longest: longest}
		}
	}

	current := 0
	for day := anchor; ; day = day.AddDate(0, 0, -1) {
		if _, ok := seen[day.Format(models.RideDateLayout)]; !ok {
			break
		}
		current++
	}
	return Streak{Current: current, Longest: longest}
}

// Savings estimates the shared-distance byproducts of a user's rides.
type Savings struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	CO2SavedKg      float64 `json:"total_co2_saved_kg"`
	MoneySaved      float64 `json:"money_saved"`
}

func (c *TrustCalculator) Savings(totalRides int) Savings {
	distance := float64(totalRides) * c.cfg.AvgRideDistanceKm
	co2 := distance * c.cfg.CO2PerKm
	soloCost := distance * c.cfg.CostPerKmSolo
	sharedCost := soloCost * (1 - c.cfg.SavingsFactor)
	money := math.Max(0, soloCost-sharedCost)

	return Savings{
		TotalDistanceKm: math.Round(distance*10) / 10,
		CO2SavedKg:      math.Round(co2*100) / 100,
		MoneySaved:      math.Round(money),
	}
}

// Badges evaluates every badge definition against the current metrics. The
// set is recomputed on demand and never stored.
func (c *TrustCalculator) Badges(rideCount int, savings Savings, longestStreak int) []Badge {
	badges := make([]Badge, 0, len(catalog.BadgeDefinitions))
	for _, def := range catalog.BadgeDefinitions {
		var metric float64
		switch def.Metric {
		case catalog.BadgeMetricRides:
			metric = float64(rideCount)
		case catalog.BadgeMetricCO2:
			metric = savings.CO2SavedKg
		case catalog.BadgeMetricLongestStreak:
			metric = float64(longestStreak)
		case catalog.BadgeMetricMoneySaved:
			metric = savings.MoneySaved
		}
		if metric >= def.Threshold {
			badges = append(badges, Badge{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				Icon:        def.Icon,
				Earned:      true,
			})
		}
	}
	return badges
}
