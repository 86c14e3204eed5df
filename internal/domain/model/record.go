// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Race time bounds for the "MM:SS" format.
const (
	maxMinutes = 59
	maxSeconds = 59
)

// RaceRecord is one climb time from the dataset.
// Fields mirror the JSON keys of the published cyclist dataset.
type RaceRecord struct {
	Year        int    `json:"Year"`        // calendar year of the ride
	Time        string `json:"Time"`        // duration as "MM:SS"
	Doping      string `json:"Doping"`      // allegation text, empty when none
	Name        string `json:"Name"`        // rider name
	Nationality string `json:"Nationality"` // rider nationality code

	Place   int    `json:"Place,omitempty"`
	Seconds int    `json:"Seconds,omitempty"`
	URL     string `json:"URL,omitempty"`
}

// HasAllegation reports whether a doping allegation is attached to the record.
// Absent and empty allegation text both count as no allegation.
func (r RaceRecord) HasAllegation() bool {
	return r.Doping != ""
}

// Duration returns the parsed race time.
func (r RaceRecord) Duration() (time.Duration, error) {
	return ParseRaceTime(r.Time)
}

// Validate checks that the fields required for plotting are usable.
func (r RaceRecord) Validate() error {
	switch {
	case r.Year <= 0:
		return fmt.Errorf("%w: Year must be positive, got %d", ErrMissingField, r.Year)
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("%w: Name", ErrMissingField)
	case strings.TrimSpace(r.Nationality) == "":
		return fmt.Errorf("%w: Nationality", ErrMissingField)
	}
	if _, err := ParseRaceTime(r.Time); err != nil {
		return err
	}
	return nil
}

// ParseRaceTime parses "M:SS" or "MM:SS" into a duration.
// Minutes and seconds are both limited to 0-59.
func ParseRaceTime(s string) (time.Duration, error) {
	minStr, secStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w %q: missing ':' separator", ErrInvalidTime, s)
	}
	minutes, err := parseClockField(minStr, maxMinutes)
	if err != nil {
		return 0, fmt.Errorf("%w %q: minutes: %v", ErrInvalidTime, s, err)
	}
	seconds, err := parseClockField(secStr, maxSeconds)
	if err != nil {
		return 0, fmt.Errorf("%w %q: seconds: %v", ErrInvalidTime, s, err)
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

func parseClockField(s string, limit int) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("want 1 or 2 digits, got %q", s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > limit {
		return 0, fmt.Errorf("%d out of range 0-%d", v, limit)
	}
	return v, nil
}

// FormatRaceTime renders a duration as zero-padded "MM:SS".
// Sub-second parts are truncated.
func FormatRaceTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
