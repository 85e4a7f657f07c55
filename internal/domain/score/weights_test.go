package score_test

import (
	"testing"

	"github.com/bnnadi/confida-scoring/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoringWeights(t *testing.T) {
	Convey("Given the default weights", t, func() {
		w := score.DefaultWeights()

		Convey("Then they already sum to 1.0", func() {
			So(w.Content+w.Delivery+w.Technical, ShouldAlmostEqual, 1.0, 1e-6)
			So(w.Normalized(), ShouldResemble, w)
		})
	})

	Convey("Given weights that do not sum to 1.0", t, func() {
		w := score.ScoringWeights{Content: 2.0, Delivery: 1.0, Technical: 1.0}

		Convey("When normalized", func() {
			n := w.Normalized()

			Convey("Then components sum to 1.0 and keep their ratios", func() {
				So(n.Content+n.Delivery+n.Technical, ShouldAlmostEqual, 1.0, 1e-6)
				So(n.Content, ShouldAlmostEqual, 0.5, 1e-9)
				So(n.Delivery, ShouldAlmostEqual, 0.25, 1e-9)
				So(n.Technical, ShouldAlmostEqual, 0.25, 1e-9)
			})
		})
	})

	Convey("Given zero weights", t, func() {
		w := score.ScoringWeights{}

		Convey("Then normalization falls back to the defaults", func() {
			So(w.Normalized(), ShouldResemble, score.DefaultWeights())
		})
	})

	Convey("Given agent scores 8.0, 6.0 and 9.0 with weights 0.4/0.3/0.3", t, func() {
		w := score.ScoringWeights{Content: 0.4, Delivery: 0.3, Technical: 0.3}

		Convey("Then the combined score is 7.7", func() {
			So(w.Combine(8.0, 6.0, 9.0), ShouldAlmostEqual, 7.7, 1e-9)
		})
	})
}

func TestStrategyResultProjection(t *testing.T) {
	Convey("Given a strategy result", t, func() {
		r := score.StrategyResult{
			Score:           7.25,
			Feedback:        "good answer",
			Confidence:      0.8,
			Details:         map[string]any{"fallback": false},
			Recommendations: []string{"add examples"},
			Metrics:         map[string]float64{"relevance_score": 8},
		}

		Convey("When projected to an agent score", func() {
			a := r.AgentScore()

			Convey("Then the shared fields carry over", func() {
				So(a.Score, ShouldEqual, 7.25)
				So(a.Feedback, ShouldEqual, "good answer")
				So(a.Confidence, ShouldEqual, 0.8)
				So(a.Details["fallback"], ShouldBeFalse)
			})
		})
	})
}
