package vector

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func records() []model.RaceRecord {
	return []model.RaceRecord{
		{Year: 1994, Time: "36:55", Name: "Miguel Indurain", Nationality: "ESP"},
		{Year: 1996, Time: "36:50", Name: "Bjarne Riis", Nationality: "DEN", Doping: "EPO <confessed>"},
	}
}

func buildDoc() *chart.Document {
	doc, err := chart.NewBuilder().Build(records())
	So(err, ShouldBeNil)
	return doc
}

func TestMarkup(t *testing.T) {
	Convey("Given scene nodes", t, func() {
		Convey("Then empty elements should self-close", func() {
			So(Markup(chart.NewNode(chart.KindCircle).Set("r", "5")), ShouldEqual, `<circle r="5"/>`)
		})

		Convey("Then transforms and styles should become attributes", func() {
			n := chart.NewNode(chart.KindGroup).Set("id", "legend").SetStyle("fill", "blue").SetStyle("opacity", "0")
			n.Transform = chart.Transform{TX: 950, TY: 460}
			So(Markup(n), ShouldEqual, `<g id="legend" transform="translate(950, 460)" style="fill: blue; opacity: 0"/>`)
		})

		Convey("Then text and attribute values should be escaped", func() {
			n := chart.NewNode(chart.KindText).Set("data-tooltip", `a<br>"b"`)
			n.Text = "x < y & z"
			So(Markup(n), ShouldEqual, `<text data-tooltip="a&lt;br&gt;&#34;b&#34;">x &lt; y &amp; z</text>`)
		})

		Convey("Then an empty div should keep its closing tag", func() {
			So(Markup(chart.NewNode(chart.KindDiv).Set("id", "tooltip")), ShouldEqual, `<div id="tooltip"></div>`)
		})
	})
}

func TestWriteSVG(t *testing.T) {
	Convey("Given a rendered document", t, func() {
		doc := buildDoc()

		Convey("When writing it as SVG", func() {
			var buf bytes.Buffer
			err := New().WriteSVG(&buf, doc)

			Convey("Then the output should be well-formed XML with the chart parts", func() {
				So(err, ShouldBeNil)
				out := buf.String()
				So(out, ShouldStartWith, `<?xml`)
				So(wellFormed(out), ShouldBeNil)
				So(strings.Count(out, `class="dot"`), ShouldEqual, 2)
				So(out, ShouldContainSubstring, `id="x-axis"`)
				So(out, ShouldContainSubstring, `id="y-axis"`)
				So(out, ShouldContainSubstring, `id="legend"`)
				So(out, ShouldContainSubstring, `data-xvalue="1996"`)
				So(out, ShouldContainSubstring, `EPO &amp;lt;confessed&amp;gt;`)
				So(out, ShouldContainSubstring, "Time in Minutes and Seconds")
				So(out, ShouldNotContainSubstring, `id="tooltip"`)
			})
		})

		Convey("When minifying", func() {
			var plain, small bytes.Buffer
			So(New().WriteSVG(&plain, doc), ShouldBeNil)
			So(New(WithMinify(true)).WriteSVG(&small, doc), ShouldBeNil)

			Convey("Then the output should shrink and keep the marks", func() {
				So(small.Len(), ShouldBeLessThan, plain.Len())
				So(small.String(), ShouldContainSubstring, "data-xvalue")
			})
		})
	})

	Convey("Given a document without a panel", t, func() {
		err := New().WriteSVG(io.Discard, chart.NewDocument(""))
		So(errors.Is(err, ErrNoPanel), ShouldBeTrue)
	})
}

func TestWritePage(t *testing.T) {
	Convey("Given a rendered document", t, func() {
		doc := buildDoc()

		Convey("When writing the HTML page", func() {
			var buf bytes.Buffer
			err := New(WithTitle("Alpe d'Huez")).WritePage(&buf, doc)
			out := buf.String()

			Convey("Then it should contain the container, chart and tooltip", func() {
				So(err, ShouldBeNil)
				So(out, ShouldStartWith, "<!DOCTYPE html>")
				So(out, ShouldContainSubstring, `<div id="scatterplot">`)
				So(out, ShouldContainSubstring, `<div id="tooltip" style="position: absolute; opacity: 0;`)
				So(out, ShouldContainSubstring, "Alpe d&#39;Huez")
				So(out, ShouldContainSubstring, "2 Fastest times")
			})

			Convey("Then the script should carry the hover timings and offsets", func() {
				So(regexp.MustCompile(`fadeIn =\s*200\s*;`).MatchString(out), ShouldBeTrue)
				So(regexp.MustCompile(`fadeOut =\s*500\s*;`).MatchString(out), ShouldBeTrue)
				So(regexp.MustCompile(`offsetX =\s*5\s*;`).MatchString(out), ShouldBeTrue)
				So(regexp.MustCompile(`offsetY =\s*-28\s*;`).MatchString(out), ShouldBeTrue)
				So(out, ShouldContainSubstring, `document.getElementById("tooltip")`)
			})
		})

		Convey("When minifying the page", func() {
			var plain, small bytes.Buffer
			So(New().WritePage(&plain, doc), ShouldBeNil)
			So(New(WithMinify(true)).WritePage(&small, doc), ShouldBeNil)

			Convey("Then it should shrink and keep the chart", func() {
				So(small.Len(), ShouldBeLessThan, plain.Len())
				So(small.String(), ShouldContainSubstring, "scatterplot")
				So(small.String(), ShouldContainSubstring, "data-tooltip")
			})
		})
	})

	Convey("Given a document without a panel", t, func() {
		err := New().WritePage(io.Discard, chart.NewDocument(""))
		So(errors.Is(err, ErrNoPanel), ShouldBeTrue)
	})
}

func wellFormed(s string) error {
	d := xml.NewDecoder(strings.NewReader(s))
	for {
		if _, err := d.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
