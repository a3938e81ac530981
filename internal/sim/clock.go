package sim

import "time"

// Clock owns the global simulated timeline: fixed-size steps from a start
// instant. It drives buffer refreshes, tide phase, and day/night.
type Clock struct {
	start     time.Time
	stepHours int
	step      int
}

// NewClock creates a clock at step zero.
func NewClock(start time.Time, stepHours int) *Clock {
	if stepHours < 1 {
		stepHours = 1
	}
	return &Clock{start: start.UTC(), stepHours: stepHours}
}

// Step returns the current step index.
func (c *Clock) Step() int { return c.step }

// Advance moves the clock one step forward.
func (c *Clock) Advance() { c.step++ }

// Now returns the simulated instant of the current step.
func (c *Clock) Now() time.Time {
	return c.start.Add(time.Duration(c.step*c.stepHours) * time.Hour)
}

// StepHours returns the configured step size in hours.
func (c *Clock) StepHours() int { return c.stepHours }

// ElapsedHours returns simulated hours since the start.
func (c *Clock) ElapsedHours() float64 {
	return float64(c.step * c.stepHours)
}

// Day returns the zero-based simulated day index.
func (c *Clock) Day() int { return c.step * c.stepHours / 24 }

// HourOfDay returns the simulated wall-clock hour.
func (c *Clock) HourOfDay() int { return c.Now().Hour() }

// IsDay reports daylight; night runs from 20:00 to 06:00.
func (c *Clock) IsDay() bool {
	h := c.HourOfDay()
	return h >= 6 && h < 20
}
