package stub_test

import (
	"context"
	"testing"

	"github.com/bnnadi/confida-scoring/internal/analysis"
	"github.com/bnnadi/confida-scoring/internal/analysis/backend/stub"
	"github.com/bnnadi/confida-scoring/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestStubCapability(t *testing.T) {
	Convey("Given the stub capability", t, func() {
		c := stub.New()

		Convey("When queried with a short answer", func() {
			resp, err := c.Query(context.Background(), analysis.Query{Answer: "Short."})

			Convey("Then it returns structured data without error", func() {
				So(err, ShouldBeNil)
				So(resp.Data, ShouldNotBeNil)
				So(resp.Data["relevance_score"], ShouldEqual, 5.0)
			})
		})

		Convey("When queried with a detailed answer", func() {
			long := make([]byte, 500)
			for i := range long {
				long[i] = 'a'
			}
			resp, err := c.Query(context.Background(), analysis.Query{Answer: string(long)})

			Convey("Then the canned scores move to the upper band", func() {
				So(err, ShouldBeNil)
				So(resp.Data["relevance_score"], ShouldEqual, 8.0)
				So(resp.Data["clarity_score"], ShouldEqual, 8.0)
				So(resp.Data["accuracy_score"], ShouldEqual, 8.0)
			})
		})

		Convey("Then every strategy parses the stub output without fallback", func() {
			for _, p := range analysis.Profiles() {
				s := analysis.NewStrategy(p, c)
				result := s.Analyze(context.Background(), analysis.Input{Response: "A reasonably detailed answer about system design and tradeoffs."})
				So(result.Details["fallback"], ShouldBeNil)
				So(result.Details["parse_fallback"], ShouldBeNil)
				So(result.Score, ShouldBeGreaterThan, 0)
			}
		})
	})
}
