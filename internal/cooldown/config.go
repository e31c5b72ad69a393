package cooldown

import (
	"fmt"
	"time"
)

// Config holds the reference clock settings for claim-count allowances
type Config struct {
	// Location is the reference timezone the daily cutoff is evaluated in
	Location *time.Location

	// CutoffHour is the local hour (0-23) at which a new claim day begins
	CutoffHour int
}

// NewConfig loads the named timezone and validates the cutoff hour
func NewConfig(timezone string, cutoffHour int) (Config, error) {
	if cutoffHour < 0 || cutoffHour > 23 {
		return Config{}, fmt.Errorf(ErrMsgInvalidCutoffHour, cutoffHour)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf(ErrMsgLoadTimezoneFailed, timezone, err)
	}
	return Config{Location: loc, CutoffHour: cutoffHour}, nil
}

// DefaultConfig returns the Europe/Moscow, 16:00 reference clock.
// Falls back to a fixed UTC+3 zone when tzdata is unavailable.
func DefaultConfig() Config {
	cfg, err := NewConfig(DefaultReferenceTimezone, DefaultDailyCutoffHour)
	if err != nil {
		return Config{Location: time.FixedZone("MSK", 3*60*60), CutoffHour: DefaultDailyCutoffHour}
	}
	return cfg
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
