package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/okian/tourplot/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseRaceTime(t *testing.T) {
	convey.Convey("Given race time strings", t, func() {
		convey.Convey("When parsing a well-formed MM:SS value", func() {
			d, err := model.ParseRaceTime("36:55")

			convey.Convey("Then it should return the duration", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldEqual, 36*time.Minute+55*time.Second)
			})
		})

		convey.Convey("When parsing a single-digit minute", func() {
			d, err := model.ParseRaceTime("9:05")

			convey.Convey("Then it should be accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldEqual, 9*time.Minute+5*time.Second)
			})
		})

		convey.Convey("When parsing surrounding whitespace", func() {
			d, err := model.ParseRaceTime(" 39:50 ")

			convey.Convey("Then it should be trimmed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldEqual, 39*time.Minute+50*time.Second)
			})
		})

		convey.Convey("When parsing malformed values", func() {
			for _, in := range []string{"", "3655", "36:5x", "60:00", "36:60", "-1:10", "123:00", "36:555", ":30"} {
				_, err := model.ParseRaceTime(in)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, model.ErrInvalidTime), convey.ShouldBeTrue)
			}
		})
	})
}

func TestFormatRaceTime(t *testing.T) {
	convey.Convey("Given durations", t, func() {
		convey.So(model.FormatRaceTime(36*time.Minute+50*time.Second), convey.ShouldEqual, "36:50")
		convey.So(model.FormatRaceTime(5*time.Second), convey.ShouldEqual, "00:05")
		convey.So(model.FormatRaceTime(-time.Second), convey.ShouldEqual, "00:00")

		convey.Convey("Then format and parse should round-trip", func() {
			d, err := model.ParseRaceTime(model.FormatRaceTime(37*time.Minute + 1*time.Second))
			convey.So(err, convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, 37*time.Minute+1*time.Second)
		})
	})
}

func TestRaceRecord(t *testing.T) {
	convey.Convey("Given a race record", t, func() {
		rec := model.RaceRecord{
			Year:        1996,
			Time:        "36:50",
			Doping:      "EPO",
			Name:        "Bjarne Riis",
			Nationality: "DEN",
		}

		convey.Convey("When the doping field is set", func() {
			convey.Convey("Then it should report an allegation", func() {
				convey.So(rec.HasAllegation(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the doping field is empty", func() {
			rec.Doping = ""

			convey.Convey("Then it should report no allegation", func() {
				convey.So(rec.HasAllegation(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When validating a complete record", func() {
			convey.So(rec.Validate(), convey.ShouldBeNil)
			d, err := rec.Duration()
			convey.So(err, convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, 36*time.Minute+50*time.Second)
		})

		convey.Convey("When required fields are missing", func() {
			noName := rec
			noName.Name = " "
			noYear := rec
			noYear.Year = 0
			noNat := rec
			noNat.Nationality = ""

			convey.Convey("Then validation should fail with a missing field error", func() {
				for _, r := range []model.RaceRecord{noName, noYear, noNat} {
					err := r.Validate()
					convey.So(errors.Is(err, model.ErrMissingField), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the time is malformed", func() {
			rec.Time = "3x:10"

			convey.Convey("Then validation should report an invalid time", func() {
				err := rec.Validate()
				convey.So(errors.Is(err, model.ErrInvalidTime), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "3x:10")
			})
		})
	})
}
