package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When created with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When created with custom namespace and buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("test"),
				WithSubsystem("scoring"),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the options should apply", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "scoring")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain metrics", func() {
			So(func() {
				RecordAnalysis()
				RecordAnalysisFallback()
				RecordAnalysisDuration(12.5)
				RecordOverallScore(7.7)
				RecordStrategyLatency("content", 42.0)
				RecordStrategyFallback("delivery", "parse")
				RecordStrategyFallback("technical", "call")
				UpdateAgentHealth("content", true)
				UpdateAgentHealth("delivery", false)
				RecordHTTPRequest("analysis", "POST", "200")
				RecordHTTPRequestDuration("analysis", "POST", "200", 55.0)
			}, ShouldNotPanic)
		})

		Convey("When fetching the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
