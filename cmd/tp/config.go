package main

import (
	"fmt"
	"time"

	"time-picker/internal/clock"
	"time-picker/internal/config"
)

// ClockFactory creates the clock "now" is read from, based on environment
type ClockFactory struct {
	env      config.Environment
	fixedNow string
}

// NewClockFactory creates a new clock factory for the application configuration
func NewClockFactory(app config.ApplicationConfig) *ClockFactory {
	return &ClockFactory{env: app.Environment, fixedNow: app.FixedNow}
}

// CreateClock creates a clock instance based on the current environment
func (cf *ClockFactory) CreateClock() (clock.Clock, error) {
	switch cf.env {
	case config.Testing:
		return cf.createTestingClock()
	default:
		// Development and production read the system clock
		return clock.Real{}, nil
	}
}

// createTestingClock pins "now" so command output is reproducible
func (cf *ClockFactory) createTestingClock() (clock.Clock, error) {
	if cf.fixedNow == "" {
		return clock.NewMock(time.Time{}), nil
	}

	now, err := time.Parse(time.RFC3339, cf.fixedNow)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixed now %q: %w", cf.fixedNow, err)
	}
	return clock.NewMock(now), nil
}
