package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tourplot/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

const testDataset = "../../internal/adapters/dataset/testdata/cyclists.json"

func TestRun(t *testing.T) {
	Convey("Given the render command over a local dataset", t, func() {
		ctx := context.Background()
		var stdout, stderr bytes.Buffer

		Convey("When writing SVG to stdout", func() {
			err := run(ctx, []string{"-source", testDataset, "-format", "svg"}, &stdout, &stderr)

			Convey("Then stdout should hold well-formed XML and logs should go to stderr", func() {
				So(err, ShouldBeNil)
				dec := xml.NewDecoder(bytes.NewReader(stdout.Bytes()))
				for {
					_, derr := dec.Token()
					if derr != nil {
						So(derr.Error(), ShouldEqual, "EOF")
						break
					}
				}
				So(stderr.String(), ShouldContainSubstring, "chart written")
			})
		})

		Convey("When writing PNG to a file", func() {
			out := filepath.Join(t.TempDir(), "chart.png")
			err := run(ctx, []string{"-source", testDataset, "-format", "PNG", "-out", out}, &stdout, &stderr)

			Convey("Then the file should decode as an image", func() {
				So(err, ShouldBeNil)
				So(stdout.Len(), ShouldEqual, 0)
				f, err := os.Open(out)
				So(err, ShouldBeNil)
				defer f.Close()
				img, err := png.Decode(f)
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the format is unknown", func() {
			err := run(ctx, []string{"-source", testDataset, "-format", "gif"}, &stdout, &stderr)

			Convey("Then a usage error should be returned", func() {
				So(errors.Is(err, errUsage), ShouldBeTrue)
				So(stderr.String(), ShouldContainSubstring, "unknown format")
			})
		})

		Convey("When the dataset file does not exist", func() {
			err := run(ctx, []string{"-source", "missing.json", "-format", "svg"}, &stdout, &stderr)

			Convey("Then the command should fail", func() {
				So(err, ShouldNotBeNil)
				So(stdout.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a flag is not recognized", func() {
			err := run(ctx, []string{"-bogus"}, &stdout, &stderr)
			So(errors.Is(err, errUsage), ShouldBeTrue)
		})
	})
}

func TestApplySource(t *testing.T) {
	Convey("Given a configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("When the source is a URL", func() {
			cfg.DatasetFile = "old.json"
			applySource(cfg, "HTTPS://example.com/data.json")
			So(cfg.DatasetURL, ShouldEqual, "HTTPS://example.com/data.json")
			So(cfg.DatasetFile, ShouldEqual, "")
		})

		Convey("When the source is a path", func() {
			applySource(cfg, "data/cyclists.json")
			So(cfg.DatasetFile, ShouldEqual, "data/cyclists.json")
			So(cfg.DatasetURL, ShouldEqual, config.DefaultDatasetURL)
		})
	})
}
