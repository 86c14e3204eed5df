package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When applying them to a manager", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the manager should carry them", func() {
				So(m.namespace, ShouldEqual, "test_namespace")
				So(m.subsystem, ShouldEqual, "test_subsystem")
				So(m.metricPrefix, ShouldEqual, "pfx")
				So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(m.enabled, ShouldBeFalse)
				So(m.refreshInterval, ShouldEqual, 5*time.Second)
				So(m.customLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When passing empty or invalid values", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(-time.Second),
				WithCustomLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults should stay", func() {
				So(m.namespace, ShouldEqual, "tourplot")
				So(m.subsystem, ShouldEqual, "chart")
				So(m.metricPrefix, ShouldEqual, "")
				So(m.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
				So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
				So(m.customLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewMetricsManager(WithPrometheusRegistry(registry))

		Convey("Then every metric should be registered", func() {
			So(m, ShouldNotBeNil)
			m.datasetRecords.Set(1)
			m.renders.WithLabelValues("svg").Inc()
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["tourplot_chart_dataset_records"], ShouldBeTrue)
			So(names["tourplot_chart_renders_total"], ShouldBeTrue)
		})

		Convey("Then a prefix should be applied to metric names", func() {
			r := prometheus.NewRegistry()
			p := NewManager(WithPrometheusRegistry(r), WithMetricPrefix("v2"))
			p.marksRendered.Inc()
			families, err := r.Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "tourplot_chart_v2_marks_rendered_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording dataset metrics", func() {
			before := testutil.ToFloat64(globalManager.datasetFetches.WithLabelValues("http", "ok"))
			RecordDatasetFetch("http", "ok", 12.5)
			UpdateDatasetRecords(35)
			hits := testutil.ToFloat64(globalManager.cacheHits)
			RecordCacheHit()
			RecordCacheMiss()

			Convey("Then the counters and gauges should move", func() {
				So(testutil.ToFloat64(globalManager.datasetFetches.WithLabelValues("http", "ok")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.datasetRecords), ShouldEqual, 35)
				So(testutil.ToFloat64(globalManager.cacheHits), ShouldEqual, hits+1)
				So(testutil.ToFloat64(globalManager.datasetLastFetchUnix), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When recording render metrics", func() {
			before := testutil.ToFloat64(globalManager.renders.WithLabelValues("png"))
			RecordRender("png", 4.2, 2048)
			RecordMarksRendered(35)

			Convey("Then the format series should be updated", func() {
				So(testutil.ToFloat64(globalManager.renders.WithLabelValues("png")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.renderBytes.WithLabelValues("png")), ShouldEqual, 2048)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("/chart.svg", "GET", "200")
				RecordHTTPRequestDuration("/chart.svg", "GET", "200", 1.5)
				RecordErrorByComponent("dataset", "fetch")
				RecordErrorByType("fetch", "error")
				RecordErrorByEndpoint("/refresh", "POST", "upstream")
				RecordErrorLatency("dataset", "fetch", 30)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("/chart.svg", "GET", "200")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("When recording system metrics", func() {
			UpdateSystemMemoryUsage(1 << 20)
			UpdateSystemGoroutineCount(7)
			So(testutil.ToFloat64(globalManager.systemMemoryUsage), ShouldEqual, 1<<20)
			So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled global manager", t, func() {
		prev := globalManager
		globalManager = NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		defer func() { globalManager = prev }()

		RecordDatasetFetch("http", "ok", 1)
		RecordRender("svg", 1, 10)
		UpdateDatasetRecords(3)

		Convey("Then nothing should be recorded", func() {
			So(testutil.ToFloat64(globalManager.datasetFetches.WithLabelValues("http", "ok")), ShouldEqual, 0)
			So(testutil.ToFloat64(globalManager.datasetRecords), ShouldEqual, 0)
		})

		Convey("Then the system sampler should return at once", func() {
			done := make(chan struct{})
			go func() {
				RunSystemSampler(context.Background())
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("sampler did not return")
			}
		})
	})
}

func TestSystemSampler(t *testing.T) {
	Convey("Given the system sampler", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			RunSystemSampler(ctx)
			close(done)
		}()
		cancel()

		Convey("Then it should stop with its context and leave samples behind", func() {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("sampler did not stop")
			}
			So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldBeGreaterThan, 0)
		})
	})
}

func TestRegister(t *testing.T) {
	Convey("Given an extra collector", t, func() {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: "tourplot_test_register_total", Help: "test"})

		Convey("Then the first registration should succeed and the second should fail", func() {
			So(Register(c), ShouldBeNil)
			err := Register(c)
			So(errors.Is(err, ErrRegisterFailed), ShouldBeTrue)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordRender("svg", 1, 100)
					RecordCacheHit()
					RecordHTTPRequest("/", "GET", "200")
				}
			}()
		}
		wg.Wait()

		Convey("Then recording should not race or panic", func() {
			So(testutil.ToFloat64(globalManager.renders.WithLabelValues("svg")), ShouldBeGreaterThanOrEqualTo, 1600)
		})
	})
}
