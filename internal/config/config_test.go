package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/tourplot/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DatasetURL, convey.ShouldEqual, config.DefaultDatasetURL)
			convey.So(cfg.ChartWidth, convey.ShouldEqual, 1200)
			convey.So(cfg.ChartHeight, convey.ShouldEqual, 500)
			convey.So(cfg.ChartPadding, convey.ShouldEqual, 60)
			convey.So(cfg.MarkRadius, convey.ShouldEqual, 5)
			convey.So(cfg.AllegationColor, convey.ShouldEqual, "orange")
			convey.So(cfg.NeutralColor, convey.ShouldEqual, "blue")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the duration helpers should convert milliseconds", func() {
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 0)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, 0)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = " " },
			"unknown format":    func(c *config.Config) { c.LogFormat = "xml" },
			"relative url":      func(c *config.Config) { c.DatasetURL = "/cyclist-data.json" },
			"ftp url":           func(c *config.Config) { c.DatasetURL = "ftp://example.com/x.json" },
			"zero timeout":      func(c *config.Config) { c.FetchTimeoutMS = 0 },
			"zero width":        func(c *config.Config) { c.ChartWidth = 0 },
			"padding too large": func(c *config.Config) { c.ChartPadding = 250 },
			"negative padding":  func(c *config.Config) { c.ChartPadding = -1 },
			"zero radius":       func(c *config.Config) { c.MarkRadius = 0 },
		}
		for _, mutate := range cases {
			cfg := config.New(context.Background())
			mutate(cfg)
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("When a dataset file is set the url is not checked", func() {
			cfg := config.New(context.Background())
			cfg.DatasetURL = ""
			cfg.DatasetFile = "testdata/cyclists.json"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
