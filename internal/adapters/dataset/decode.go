package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/tourplot/internal/domain/model"
)

// wireRecord uses pointers so an absent key is distinguishable from a zero value.
type wireRecord struct {
	Year        *int    `json:"Year"`
	Time        *string `json:"Time"`
	Doping      *string `json:"Doping"`
	Name        *string `json:"Name"`
	Nationality *string `json:"Nationality"`
	Place       *int    `json:"Place"`
	Seconds     *int    `json:"Seconds"`
	URL         *string `json:"URL"`
}

func (w *wireRecord) toRecord() (model.RaceRecord, error) {
	var missing string
	switch {
	case w.Year == nil:
		missing = "Year"
	case w.Time == nil:
		missing = "Time"
	case w.Name == nil:
		missing = "Name"
	case w.Nationality == nil:
		missing = "Nationality"
	}
	if missing != "" {
		return model.RaceRecord{}, fmt.Errorf("%w: %s", model.ErrMissingField, missing)
	}

	r := model.RaceRecord{
		Year:        *w.Year,
		Time:        *w.Time,
		Name:        *w.Name,
		Nationality: *w.Nationality,
	}
	if w.Doping != nil {
		r.Doping = *w.Doping
	}
	if w.Place != nil {
		r.Place = *w.Place
	}
	if w.Seconds != nil {
		r.Seconds = *w.Seconds
	}
	if w.URL != nil {
		r.URL = *w.URL
	}
	if err := r.Validate(); err != nil {
		return model.RaceRecord{}, err
	}
	return r, nil
}

// Decode reads a JSON array of records and validates each one.
// The first bad record fails the whole batch with its index in the error.
func Decode(r io.Reader) ([]model.RaceRecord, error) {
	var wire []*wireRecord
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(wire) == 0 {
		return nil, ErrEmpty
	}

	out := make([]model.RaceRecord, 0, len(wire))
	for i, w := range wire {
		if w == nil {
			return nil, fmt.Errorf("%w: record %d: null", ErrInvalidRecord, i)
		}
		rec, err := w.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidRecord, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
