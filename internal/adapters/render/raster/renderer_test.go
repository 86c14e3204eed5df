package raster

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"testing"

	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func buildDoc() *chart.Document {
	doc, err := chart.NewBuilder().Build([]model.RaceRecord{
		{Year: 1994, Time: "36:55", Name: "Miguel Indurain", Nationality: "ESP"},
		{Year: 1996, Time: "36:50", Name: "Bjarne Riis", Nationality: "DEN", Doping: "EPO"},
	})
	So(err, ShouldBeNil)
	return doc
}

func rgb8(r, g, b, _ uint32) (uint8, uint8, uint8) {
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestWritePNG(t *testing.T) {
	Convey("Given a rendered document", t, func() {
		doc := buildDoc()

		Convey("When encoding it as PNG", func() {
			var buf bytes.Buffer
			err := New().WritePNG(&buf, doc)
			So(err, ShouldBeNil)
			img, err := png.Decode(&buf)
			So(err, ShouldBeNil)

			Convey("Then the image should have the panel size", func() {
				So(img.Bounds().Dx(), ShouldEqual, 1200)
				So(img.Bounds().Dy(), ShouldEqual, 500)
			})

			Convey("Then marks should be painted in their colors", func() {
				// Slightly inside each circle, clear of axis and grid lines.
				r, g, b := rgb8(img.At(62, 438).RGBA())
				So([]uint8{r, g, b}, ShouldResemble, []uint8{0, 0, 255})

				r, g, b = rgb8(img.At(1141, 61).RGBA())
				So(r, ShouldEqual, 255)
				So(g, ShouldEqual, 165)
				So(b, ShouldEqual, 0)
			})

			Convey("Then empty areas should keep the background", func() {
				r, g, b := rgb8(img.At(5, 5).RGBA())
				So([]uint8{r, g, b}, ShouldResemble, []uint8{255, 255, 255})
			})
		})

		Convey("When rendering at 2x", func() {
			img, err := New(WithScale(2), WithBackground("#000")).Image(doc)

			Convey("Then the canvas should double", func() {
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 2400)
				So(img.Bounds().Dy(), ShouldEqual, 1000)
				r, g, b := rgb8(img.At(5, 5).RGBA())
				So([]uint8{r, g, b}, ShouldResemble, []uint8{0, 0, 0})
			})
		})
	})

	Convey("Given a document without a panel", t, func() {
		err := New().WritePNG(io.Discard, chart.NewDocument(""))
		So(errors.Is(err, ErrNoPanel), ShouldBeTrue)
	})

	Convey("Given a panel without a size", t, func() {
		doc := chart.NewDocument("")
		doc.Container.Append(chart.NewNode(chart.KindSVG))
		_, err := New().Image(doc)
		So(errors.Is(err, ErrInvalidSize), ShouldBeTrue)
	})
}

func TestParseColor(t *testing.T) {
	Convey("Given color strings", t, func() {
		Convey("Then names, hex and currentColor should resolve", func() {
			for _, s := range []string{"orange", "Blue", "lightgray", "currentColor", "#fa0", "#FFA500"} {
				_, ok := parseColor(s)
				So(ok, ShouldBeTrue)
			}
			c, _ := parseColor("#ffa500")
			r, g, b := rgb8(c.RGBA())
			So([]uint8{r, g, b}, ShouldResemble, []uint8{255, 165, 0})
		})

		Convey("Then none and junk should paint nothing", func() {
			for _, s := range []string{"", "none", "transparent", "#12", "#ggg", "chartreuse-ish"} {
				_, ok := parseColor(s)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestEmValue(t *testing.T) {
	Convey("Given dy offsets", t, func() {
		So(emValue("0.71em"), ShouldEqual, 0.71)
		So(emValue(" 0.32em "), ShouldEqual, 0.32)
		So(emValue("4px"), ShouldEqual, 0)
		So(emValue(""), ShouldEqual, 0)
	})
}
