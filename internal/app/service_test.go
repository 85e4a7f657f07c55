package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/bnnadi/confida-scoring/internal/analysis"
	"github.com/bnnadi/confida-scoring/internal/analysis/backend/stub"
	"github.com/bnnadi/confida-scoring/internal/app"
	"github.com/bnnadi/confida-scoring/internal/domain/score"
	"github.com/bnnadi/confida-scoring/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

// perStrategyCapability returns a different flat score per strategy,
// dispatching on the strategy's system prompt.
type perStrategyCapability struct {
	content   float64
	delivery  float64
	technical float64
}

func (c perStrategyCapability) Query(_ context.Context, q analysis.Query) (analysis.Response, error) {
	var base float64
	var keys []string
	switch {
	case strings.Contains(q.SystemPrompt, "content analysis expert"):
		base = c.content
		keys = []string{"relevance_score", "completeness_score", "structure_score", "keyword_coverage", "example_quality"}
	case strings.Contains(q.SystemPrompt, "communication analysis expert"):
		base = c.delivery
		keys = []string{"clarity_score", "confidence_score", "structure_score", "conciseness_score", "professional_tone_score"}
	default:
		base = c.technical
		keys = []string{"accuracy_score", "depth_score", "relevance_score", "terminology_score", "problem_solving_score"}
	}
	data := map[string]any{"confidence": 0.9}
	for _, k := range keys {
		data[k] = base
	}
	return analysis.Response{Data: data}, nil
}

// failingCapability always errors.
type failingCapability struct{}

func (failingCapability) Query(context.Context, analysis.Query) (analysis.Response, error) {
	return analysis.Response{}, errors.New("backend down")
}

// slowCapability ignores its context and responds after a fixed delay.
type slowCapability struct {
	delay time.Duration
}

func (c slowCapability) Query(context.Context, analysis.Query) (analysis.Response, error) {
	time.Sleep(c.delay)
	return analysis.Response{Data: map[string]any{"relevance_score": 8.0}}, nil
}

func TestServiceAnalyzeResponse(t *testing.T) {
	Convey("Given strategies scoring 8.0, 6.0 and 9.0 with default weights", t, func() {
		svc := app.New(perStrategyCapability{content: 8.0, delivery: 6.0, technical: 9.0})

		Convey("When the answer is analyzed", func() {
			result := svc.AnalyzeResponse(context.Background(), app.Request{
				Response: "My detailed answer about the system design.",
				Question: "How would you design a rate limiter?",
				Role:     "software_engineer",
			})

			Convey("Then the overall score is the weighted combination 7.7", func() {
				So(result.OverallScore, ShouldAlmostEqual, 7.7, 1e-9)
			})

			Convey("Then the per-agent scores are preserved", func() {
				So(result.ContentAgent.Score, ShouldAlmostEqual, 8.0, 1e-9)
				So(result.DeliveryAgent.Score, ShouldAlmostEqual, 6.0, 1e-9)
				So(result.TechnicalAgent.Score, ShouldAlmostEqual, 9.0, 1e-9)
			})

			Convey("Then strengths and improvements follow the thresholds", func() {
				So(result.Strengths, ShouldContain, "Strong content relevance and completeness")
				So(result.Strengths, ShouldContain, "Excellent technical knowledge")
				So(result.Strengths, ShouldNotContain, "Clear and confident communication")
				So(result.AreasForImprovement, ShouldBeEmpty)
			})

			Convey("Then only below-threshold strategies contribute recommendations", func() {
				// delivery at 6.0 is the only strategy under 7.0
				So(len(result.Recommendations), ShouldBeLessThanOrEqualTo, 5)
				for _, r := range result.Recommendations {
					So(r, ShouldNotContainSubstring, "technical")
				}
			})

			Convey("Then the metadata describes the request", func() {
				So(result.AnalysisMetadata["role"], ShouldEqual, "software_engineer")
				So(result.AnalysisMetadata["question_type"], ShouldEqual, "technical")
				So(result.AnalysisMetadata["weights_used"], ShouldResemble, score.DefaultWeights())
			})
		})
	})

	Convey("Given per-request weight overrides", t, func() {
		svc := app.New(perStrategyCapability{content: 10.0, delivery: 0.0, technical: 0.0})

		Convey("Then the override replaces the configured weights", func() {
			w := score.ScoringWeights{Content: 1.0}
			result := svc.AnalyzeResponse(context.Background(), app.Request{
				Response: "answer", Weights: &w,
			})
			So(result.OverallScore, ShouldAlmostEqual, 10.0, 1e-9)
		})
	})
}

func TestServiceCapabilityFailure(t *testing.T) {
	Convey("Given a capability that always fails", t, func() {
		svc := app.New(failingCapability{})

		Convey("When the answer is analyzed", func() {
			result := svc.AnalyzeResponse(context.Background(), app.Request{
				Response: "A medium length answer that still deserves a complete result.",
				Question: "Tell me about a project you led.",
			})

			Convey("Then the analysis is still complete with scores in range", func() {
				for _, a := range []score.AgentScore{result.ContentAgent, result.DeliveryAgent, result.TechnicalAgent} {
					So(a.Score, ShouldBeBetweenOrEqual, 0, 10)
					So(a.Confidence, ShouldAlmostEqual, 0.5, 1e-9)
					So(a.Details["fallback"], ShouldBeTrue)
				}
				So(result.OverallScore, ShouldBeBetweenOrEqual, 0, 10)
				So(result.Recommendations, ShouldNotBeEmpty)
			})
		})
	})
}

func TestServiceTimeout(t *testing.T) {
	Convey("Given a capability slower than the configured timeout", t, func() {
		svc := app.New(slowCapability{delay: 150 * time.Millisecond}, app.WithTimeout(20*time.Millisecond))

		Convey("When the answer is analyzed", func() {
			result := svc.AnalyzeResponse(context.Background(), app.Request{
				Response: "An answer that will not be scored in time.",
				Role:     "data_scientist",
			})

			Convey("Then the combined fallback is returned", func() {
				So(result.AnalysisMetadata["fallback"], ShouldBeTrue)
				So(result.ContentAgent.Score, ShouldEqual, result.DeliveryAgent.Score)
				So(result.DeliveryAgent.Score, ShouldEqual, result.TechnicalAgent.Score)
				So(result.OverallScore, ShouldBeBetweenOrEqual, 1, 10)
				So(result.Strengths, ShouldResemble, []string{"Response provided"})
			})
		})
	})
}

func TestServiceRubric(t *testing.T) {
	Convey("Given the stub capability", t, func() {
		svc := app.New(stub.New())

		Convey("When analyzing with a rubric", func() {
			_, r := svc.AnalyzeWithRubric(context.Background(), app.Request{
				Response: "A confident, clear and structured answer with concrete examples.",
			})

			Convey("Then a rubric is synthesized from the delivery metrics", func() {
				So(r, ShouldNotBeNil)
				So(r.TotalScore, ShouldBeBetweenOrEqual, 0, 100)
				So(r.GradeTier, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a capability payload embedding an enhanced rubric", t, func() {
		embedded := rubricCapability{}
		svc := app.New(embedded)

		Convey("Then the embedded rubric wins over synthesis", func() {
			_, r := svc.AnalyzeWithRubric(context.Background(), app.Request{Response: "x"})
			So(r, ShouldNotBeNil)
			So(r.VerbalCommunication.Articulation.Score, ShouldAlmostEqual, 5.0, 1e-9)
		})
	})
}

// rubricCapability returns a payload with an embedded enhanced rubric.
type rubricCapability struct{}

func (rubricCapability) Query(context.Context, analysis.Query) (analysis.Response, error) {
	return analysis.Response{Data: map[string]any{
		"relevance_score": 8.0,
		"enhanced_rubric": map[string]any{
			"verbal_communication": map[string]any{
				"articulation": map[string]any{"score": 5.0, "feedback": "crisp"},
			},
		},
	}}, nil
}

func TestServiceStatusAndStats(t *testing.T) {
	Convey("Given a service over a working capability", t, func() {
		svc := app.New(stub.New())

		Convey("Then the agent status is healthy across the board", func() {
			report := svc.AgentStatus(context.Background())
			So(report.OverallStatus, ShouldEqual, app.StatusHealthy)
			So(report.ContentAgent.Healthy, ShouldBeTrue)
			So(report.DeliveryAgent.Healthy, ShouldBeTrue)
			So(report.TechnicalAgent.Healthy, ShouldBeTrue)
		})

		Convey("Then stats count analyses", func() {
			before := svc.GetStats().AnalysesTotal
			svc.AnalyzeResponse(context.Background(), app.Request{Response: "x"})
			after := svc.GetStats()
			So(after.AnalysesTotal, ShouldEqual, before+1)
			So(after.UptimeSeconds, ShouldBeGreaterThanOrEqualTo, 0)
		})
	})

	Convey("Given a service over a failing capability", t, func() {
		svc := app.New(failingCapability{})

		Convey("Then every agent reports unhealthy and the aggregate follows", func() {
			report := svc.AgentStatus(context.Background())
			So(report.OverallStatus, ShouldEqual, app.StatusUnhealthy)
			So(report.ContentAgent.Err, ShouldNotBeEmpty)
		})
	})
}

func TestClassifyQuestionTypeMetadata(t *testing.T) {
	Convey("Given questions of different kinds", t, func() {
		svc := app.New(stub.New())

		cases := []struct {
			question string
			want     string
		}{
			{"Tell me about your last project", "behavioral"},
			{"How would you implement a cache eviction?", "technical"},
			{"What happens to the system at 10x scale?", "system_design"},
			{"What salary range are you expecting?", "general"},
		}

		for _, tc := range cases {
			tc := tc
			Convey("Then '"+tc.question+"' classifies as "+tc.want, func() {
				result := svc.AnalyzeResponse(context.Background(), app.Request{
					Response: "answer", Question: tc.question,
				})
				So(result.AnalysisMetadata["question_type"], ShouldEqual, tc.want)
			})
		}
	})
}
