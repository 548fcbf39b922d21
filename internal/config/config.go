package config

import (
	"time"

	"campuspool/shared/env"
)

type Config struct {
	Environment string
	Port        string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost string
	RedisPort string

	JWTSecret string
	JWTExpiry time.Duration

	AllowedEmailDomain string
	AdminEmail         string
	AdminPassword      string

	Trust TrustConfig
	Rides RideConfig
}

// TrustConfig holds the thresholds and constants behind trust labels,
// badges and savings estimates.
type TrustConfig struct {
	NewUserMaxRides   int
	LowRatingBelow    float64
	TrustedMinRides   int
	TrustedMinRating  float64
	CO2PerKm          float64
	AvgRideDistanceKm float64
	CostPerKmSolo     float64
	SavingsFactor     float64
	StreakLookback    time.Duration
}

type RideConfig struct {
	UrgentHorizon     time.Duration
	MaxRecurrenceDays int
}

func LoadConfig() *Config {
	return &Config{
		Environment: env.GetString("ENVIRONMENT", "development"),
		Port:        env.GetString("PORT", "8080"),

		PostgresHost:     env.GetString("POSTGRES_HOST", "localhost"),
		PostgresPort:     env.GetString("POSTGRES_PORT", "5432"),
		PostgresUser:     env.GetString("POSTGRES_USER", "campuspool"),
		PostgresPassword: env.GetString("POSTGRES_PASSWORD", "campuspool"),
		PostgresDB:       env.GetString("POSTGRES_DB", "campuspool"),

		RedisHost: env.GetString("REDIS_HOST", "localhost"),
		RedisPort: env.GetString("REDIS_PORT", "6379"),

		JWTSecret: env.GetString("JWT_SECRET", "campuspool-secret-key"),
		JWTExpiry: env.GetDuration("JWT_EXPIRY", 24*time.Hour),

		AllowedEmailDomain: env.GetString("ALLOWED_EMAIL_DOMAIN", "@rvce.edu.in"),
		AdminEmail:         env.GetString("ADMIN_EMAIL", "admin@rvce.edu.in"),
		AdminPassword:      env.GetString("ADMIN_PASSWORD", "admin@123"),

		Trust: TrustConfig{
			NewUserMaxRides:   env.GetInt("TRUST_NEW_USER_MAX_RIDES", 4),
			LowRatingBelow:    env.GetFloat("TRUST_LOW_RATING_BELOW", 2.5),
			TrustedMinRides:   env.GetInt("TRUST_TRUSTED_MIN_RIDES", 5),
			TrustedMinRating:  env.GetFloat("TRUST_TRUSTED_MIN_RATING", 4.0),
			CO2PerKm:          env.GetFloat("CO2_PER_KM_SAVED", 0.21),
			AvgRideDistanceKm: env.GetFloat("AVG_RIDE_DISTANCE_KM", 8),
			CostPerKmSolo:     env.GetFloat("COST_PER_KM_SOLO", 12),
			SavingsFactor:     env.GetFloat("SAVINGS_FACTOR", 0.5),
			StreakLookback:    env.GetDuration("STREAK_LOOKBACK", 60*24*time.Hour),
		},
		Rides: RideConfig{
			UrgentHorizon:     env.GetDuration("URGENT_REQUEST_HORIZON", 2*time.Hour),
			MaxRecurrenceDays: env.GetInt("MAX_RECURRENCE_DAYS", 30),
		},
	}
}
