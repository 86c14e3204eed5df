package service_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/tourplot/internal/adapters/dataset"
	service "github.com/okian/tourplot/internal/app"
	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeSource returns a fixed dataset or error and counts calls.
type fakeSource struct {
	mu    sync.Mutex
	recs  []model.RaceRecord
	err   error
	calls atomic.Int64
	gate  chan struct{}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context) ([]model.RaceRecord, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.RaceRecord(nil), f.recs...), nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func sample() []model.RaceRecord {
	return []model.RaceRecord{
		{Year: 1994, Time: "36:55", Name: "Miguel Indurain", Nationality: "ESP"},
		{Year: 1996, Time: "36:50", Name: "Bjarne Riis", Nationality: "DEN", Doping: "EPO"},
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a service without a source", t, func() {
		svc := service.New()

		Convey("Then starting and fetching should fail", func() {
			So(errors.Is(svc.Start(context.Background()), service.ErrNoSource), ShouldBeTrue)
			_, err := svc.Records(context.Background())
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
			_, err = svc.Refresh(context.Background())
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
		})
	})
}

func TestService_Records(t *testing.T) {
	Convey("Given a service over a working source", t, func() {
		src := &fakeSource{recs: sample()}
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		svc := service.New(
			service.WithSource(src),
			service.WithCacheTTL(time.Minute),
			service.WithClock(func() time.Time { return now }),
		)
		ctx := context.Background()

		Convey("When records are requested twice within the ttl", func() {
			a, err := svc.Records(ctx)
			So(err, ShouldBeNil)
			b, err := svc.Records(ctx)
			So(err, ShouldBeNil)

			Convey("Then the source should be hit once", func() {
				So(len(a), ShouldEqual, 2)
				So(b, ShouldResemble, a)
				So(src.calls.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the ttl elapses", func() {
			_, _ = svc.Records(ctx)
			now = now.Add(2 * time.Minute)
			_, _ = svc.Records(ctx)

			Convey("Then the dataset should be refetched", func() {
				So(src.calls.Load(), ShouldEqual, 2)
			})
		})

		Convey("When the refetch fails after the ttl", func() {
			_, _ = svc.Records(ctx)
			now = now.Add(2 * time.Minute)
			src.fail(errors.New("network down"))
			recs, err := svc.Records(ctx)

			Convey("Then the stale snapshot should be served", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(svc.GetStats()["lastError"], ShouldContainSubstring, "network down")
			})
		})

		Convey("When Refresh is called", func() {
			_, _ = svc.Records(ctx)
			snap, err := svc.Refresh(ctx)

			Convey("Then a new snapshot should be stored regardless of age", func() {
				So(err, ShouldBeNil)
				So(snap.ID, ShouldNotBeEmpty)
				So(snap.Source, ShouldEqual, "fake")
				So(src.calls.Load(), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a failing source and nothing cached", t, func() {
		src := &fakeSource{err: dataset.ErrStatus}
		svc := service.New(service.WithSource(src))
		_, err := svc.Records(context.Background())

		Convey("Then the failure should be reported as upstream", func() {
			So(errors.Is(err, service.ErrUpstream), ShouldBeTrue)
			So(errors.Is(err, dataset.ErrStatus), ShouldBeTrue)
			So(svc.GetStats()["fetchFailures"], ShouldEqual, int64(1))
		})
	})
}

func TestService_ConcurrentColdFetch(t *testing.T) {
	Convey("Given many requests against a cold cache", t, func() {
		src := &fakeSource{recs: sample(), gate: make(chan struct{})}
		svc := service.New(service.WithSource(src))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Records(context.Background())
			}()
		}
		// Let the goroutines pile up on the in-flight fetch.
		time.Sleep(50 * time.Millisecond)
		close(src.gate)
		wg.Wait()

		Convey("Then the source should see a single fetch", func() {
			So(src.calls.Load(), ShouldEqual, 1)
		})
	})
}

func TestService_Render(t *testing.T) {
	Convey("Given a service with data", t, func() {
		svc := service.New(service.WithSource(&fakeSource{recs: sample()}), service.WithContainerID("chart"))
		ctx := context.Background()

		Convey("When building a document", func() {
			doc, err := svc.Document(ctx)

			Convey("Then it should hold one panel with a mark per record", func() {
				So(err, ShouldBeNil)
				So(doc.Container.ID(), ShouldEqual, "chart")
				So(len(doc.Panels()), ShouldEqual, 1)
				So(len(doc.Marks()), ShouldEqual, 2)
			})
		})

		Convey("When rendering every format", func() {
			var page, svg, img bytes.Buffer
			So(svc.RenderPage(ctx, &page), ShouldBeNil)
			So(svc.RenderSVG(ctx, &svg), ShouldBeNil)
			So(svc.RenderPNG(ctx, &img), ShouldBeNil)

			Convey("Then each output should be of its kind", func() {
				So(page.String(), ShouldContainSubstring, `<div id="chart">`)
				So(strings.Count(svg.String(), `class="dot"`), ShouldEqual, 2)
				decoded, err := png.Decode(&img)
				So(err, ShouldBeNil)
				So(decoded.Bounds().Dx(), ShouldEqual, 1200)
			})
		})

		Convey("When rendering by format name", func() {
			var buf bytes.Buffer
			So(svc.Render(ctx, &buf, service.FormatSVG), ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 0)
			So(svc.Render(ctx, &buf, "gif"), ShouldNotBeNil)
		})
	})

	Convey("Given a builder with custom colors", t, func() {
		svc := service.New(
			service.WithSource(&fakeSource{recs: sample()}),
			service.WithBuilder(chart.NewBuilder(chart.WithColors("red", "green"))),
		)
		doc, err := svc.Document(context.Background())
		So(err, ShouldBeNil)
		fill, _ := doc.Marks()[1].Get("fill")
		So(fill, ShouldEqual, "red")
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a service with a background refresher", t, func() {
		src := &fakeSource{recs: sample()}
		svc := service.New(service.WithSource(src), service.WithRefreshInterval(10*time.Millisecond))

		So(svc.Start(context.Background()), ShouldBeNil)
		So(svc.Start(context.Background()), ShouldBeNil)
		time.Sleep(60 * time.Millisecond)
		svc.Stop()
		calls := src.calls.Load()
		time.Sleep(30 * time.Millisecond)

		Convey("Then it should warm up, refresh and stop refreshing after Stop", func() {
			So(calls, ShouldBeGreaterThan, 1)
			So(src.calls.Load(), ShouldEqual, calls)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})

		Convey("Then stopping twice should be harmless", func() {
			So(func() { svc.Stop() }, ShouldNotPanic)
		})
	})

	Convey("Given a source that is down at startup", t, func() {
		svc := service.New(service.WithSource(&fakeSource{err: errors.New("down")}))

		Convey("Then the service should still start", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a service that has fetched", t, func() {
		svc := service.New(service.WithSource(&fakeSource{recs: sample()}))
		_, err := svc.Records(context.Background())
		So(err, ShouldBeNil)
		stats := svc.GetStats()

		Convey("Then the stats should describe the snapshot", func() {
			So(stats["records"], ShouldEqual, 2)
			So(stats["allegations"], ShouldEqual, 1)
			So(stats["source"], ShouldEqual, "fake")
			So(stats["fetches"], ShouldEqual, int64(1))
			So(stats["snapshotID"], ShouldNotBeEmpty)
			So(stats["fresh"], ShouldBeTrue)
			So(len(stats["history"].([]string)), ShouldEqual, 1)
		})
	})
}
