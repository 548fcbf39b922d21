// Package catalog holds the fixed campus reference data: pickup points,
// recurrence patterns, branches, academic years and badge definitions.
package catalog

import "time"

type PickupPoint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var PickupPoints = []PickupPoint{
	{ID: "main_gate", Name: "Main Gate", Description: "Main Entrance"},
	{ID: "library", Name: "Central Library", Description: "Near Library Building"},
	{ID: "canteen", Name: "Main Canteen", Description: "Central Canteen Area"},
	{ID: "cse_block", Name: "CSE Block", Description: "Computer Science Building"},
	{ID: "ece_block", Name: "ECE Block", Description: "Electronics Building"},
	{ID: "mech_block", Name: "Mechanical Block", Description: "Mechanical Engineering Building"},
	{ID: "civil_block", Name: "Civil Block", Description: "Civil Engineering Building"},
	{ID: "admin_block", Name: "Admin Block", Description: "Administrative Building"},
	{ID: "hostel_gate", Name: "Hostel Gate", Description: "Hostel Entrance"},
	{ID: "sports_complex", Name: "Sports Complex", Description: "Near Playground/Gym"},
	{ID: "parking_lot", Name: "Parking Lot", Description: "Main Parking Area"},
	{ID: "back_gate", Name: "Back Gate", Description: "Rear Campus Exit"},
}

// RecurrencePattern names a recognized repeat schedule. Days follow
// time.Weekday numbering.
type RecurrencePattern struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Days []time.Weekday `json:"days"`
}

var RecurrencePatterns = []RecurrencePattern{
	{ID: "weekdays", Name: "Weekdays", Days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}},
	{ID: "weekends", Name: "Weekends", Days: []time.Weekday{time.Saturday, time.Sunday}},
	{ID: "daily", Name: "Daily", Days: []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
	{ID: "mon_wed_fri", Name: "Mon/Wed/Fri", Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
	{ID: "tue_thu", Name: "Tue/Thu", Days: []time.Weekday{time.Tuesday, time.Thursday}},
}

func (p RecurrencePattern) Matches(day time.Weekday) bool {
	for _, d := range p.Days {
		if d == day {
			return true
		}
	}
	return false
}

func PickupPointByID(id string) (PickupPoint, bool) {
	for _, pp := range PickupPoints {
		if pp.ID == id {
			return pp, true
		}
	}
	return PickupPoint{}, false
}

func RecurrencePatternByID(id string) (RecurrencePattern, bool) {
	for _, p := range RecurrencePatterns {
		if p.ID == id {
			return p, true
		}
	}
	return RecurrencePattern{}, false
}

type NamedOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Branches = []NamedOption{
	{ID: "cse", Name: "Computer Science"},
	{ID: "ise", Name: "Information Science"},
	{ID: "ece", Name: "Electronics & Communication"},
	{ID: "eee", Name: "Electrical & Electronics"},
	{ID: "me", Name: "Mechanical Engineering"},
	{ID: "cv", Name: "Civil Engineering"},
	{ID: "bt", Name: "Biotechnology"},
	{ID: "ch", Name: "Chemical Engineering"},
	{ID: "im", Name: "Industrial Management"},
	{ID: "te", Name: "Telecommunication"},
}

var AcademicYears = []NamedOption{
	{ID: "1", Name: "1st Year"},
	{ID: "2", Name: "2nd Year"},
	{ID: "3", Name: "3rd Year"},
	{ID: "4", Name: "4th Year"},
}

func BranchName(id string) (string, bool) {
	for _, b := range Branches {
		if b.ID == id {
			return b.Name, true
		}
	}
	return "", false
}

func AcademicYearName(id string) (string, bool) {
	for _, y := range AcademicYears {
		if y.ID == id {
			return y.Name, true
		}
	}
	return "", false
}

// BadgeMetric selects which user statistic a badge threshold applies to.
type BadgeMetric string

const (
	BadgeMetricRides         BadgeMetric = "rides"
	BadgeMetricCO2           BadgeMetric = "co2"
	BadgeMetricLongestStreak BadgeMetric = "longest_streak"
	BadgeMetricMoneySaved    BadgeMetric = "money_saved"
)

type BadgeDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Metric      BadgeMetric `json:"metric"`
	Threshold   float64     `json:"threshold"`
}

var BadgeDefinitions = []BadgeDefinition{
	{ID: "first_ride", Name: "First Ride", Description: "Completed your first ride", Icon: "🎉", Metric: BadgeMetricRides, Threshold: 1},
	{ID: "rides_5", Name: "Rising Star", Description: "Completed 5 rides", Icon: "⭐", Metric: BadgeMetricRides, Threshold: 5},
	{ID: "rides_10", Name: "Road Warrior", Description: "Completed 10 rides", Icon: "🏆", Metric: BadgeMetricRides, Threshold: 10},
	{ID: "rides_25", Name: "Campus Hero", Description: "Completed 25 rides", Icon: "🦸", Metric: BadgeMetricRides, Threshold: 25},
	{ID: "eco_warrior", Name: "Eco Warrior", Description: "Saved 50kg CO2", Icon: "🌱", Metric: BadgeMetricCO2, Threshold: 50},
	{ID: "eco_champion", Name: "Eco Champion", Description: "Saved 100kg CO2", Icon: "🌍", Metric: BadgeMetricCO2, Threshold: 100},
	{ID: "streak_7", Name: "Week Streak", Description: "Rode 7 days in a row", Icon: "🔥", Metric: BadgeMetricLongestStreak, Threshold: 7},
	{ID: "saver_500", Name: "Smart Saver", Description: "Saved 500 in shared costs", Icon: "💰", Metric: BadgeMetricMoneySaved, Threshold: 500},
}
