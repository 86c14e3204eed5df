// Package scale maps data values onto pixel coordinates.
//
// Scales are plain values: they hold no mutable state and are derived once
// from the dataset extent.
package scale

import (
	"math"
	"time"
)

// Linear maps the domain interval [D0, D1] onto the range interval [R0, R1].
// Either interval may be descending.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map returns the range value for v. Values outside the domain extrapolate.
// A degenerate domain maps every value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	t := (v - s.D0) / (s.D1 - s.D0)
	return s.R0 + t*(s.R1-s.R0)
}

// Invert returns the domain value for a range value.
func (s Linear) Invert(px float64) float64 {
	if s.R1 == s.R0 {
		return (s.D0 + s.D1) / 2
	}
	t := (px - s.R0) / (s.R1 - s.R0)
	return s.D0 + t*(s.D1-s.D0)
}

// Time is a linear scale over instants, measured in seconds.
type Time struct {
	lin Linear
}

// NewTime creates a time scale mapping [t0, t1] onto [r0, r1].
func NewTime(t0, t1 time.Time, r0, r1 float64) Time {
	return Time{lin: NewLinear(unixSeconds(t0), unixSeconds(t1), r0, r1)}
}

// Map returns the pixel position of t.
func (s Time) Map(t time.Time) float64 { return s.lin.Map(unixSeconds(t)) }

// Invert returns the instant at pixel px, rounded to the second.
func (s Time) Invert(px float64) time.Time {
	return time.Unix(int64(math.Round(s.lin.Invert(px))), 0).UTC()
}

// Domain returns the domain bounds in the order they were given.
func (s Time) Domain() (time.Time, time.Time) {
	return time.Unix(int64(math.Round(s.lin.D0)), 0).UTC(), time.Unix(int64(math.Round(s.lin.D1)), 0).UTC()
}

// Range returns the range bounds.
func (s Time) Range() (float64, float64) { return s.lin.R0, s.lin.R1 }

// Duration is a linear scale over elapsed time, measured in seconds.
type Duration struct {
	lin Linear
}

// NewDuration creates a duration scale mapping [d0, d1] onto [r0, r1].
func NewDuration(d0, d1 time.Duration, r0, r1 float64) Duration {
	return Duration{lin: NewLinear(d0.Seconds(), d1.Seconds(), r0, r1)}
}

// Map returns the pixel position of d.
func (s Duration) Map(d time.Duration) float64 { return s.lin.Map(d.Seconds()) }

// Invert returns the duration at pixel px.
func (s Duration) Invert(px float64) time.Duration {
	return seconds(s.lin.Invert(px))
}

// Domain returns the domain bounds in the order they were given.
func (s Duration) Domain() (time.Duration, time.Duration) {
	return seconds(s.lin.D0), seconds(s.lin.D1)
}

// Range returns the range bounds.
func (s Duration) Range() (float64, float64) { return s.lin.R0, s.lin.R1 }

// YearStart returns January 1 of year in UTC.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

func seconds(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(time.Second)))
}
