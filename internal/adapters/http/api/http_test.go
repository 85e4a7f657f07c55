package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnnadi/confida-scoring/internal/adapters/http/api"
	"github.com/bnnadi/confida-scoring/internal/analysis/backend/stub"
	"github.com/bnnadi/confida-scoring/internal/app"
	"github.com/bnnadi/confida-scoring/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestMux() *http.ServeMux {
	svc := app.New(stub.New())
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	return mux
}

func postJSON(mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPostAnalysis(t *testing.T) {
	Convey("Given the API server over the stub capability", t, func() {
		mux := newTestMux()

		Convey("When posting a valid analysis request", func() {
			rec := postJSON(mux, "/v1/analysis", map[string]any{
				"response": "I migrated the service to an event-driven architecture and cut latency in half.",
				"question": "Tell me about a technical challenge you solved.",
				"role":     "software_engineer",
			})

			Convey("Then it returns 200 with a complete analysis", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["analysis_id"], ShouldNotBeEmpty)
				So(resp["agents_used"], ShouldResemble, []any{"content", "delivery", "technical"})
				So(resp["processing_time"], ShouldBeGreaterThanOrEqualTo, 0)

				analysis := resp["analysis"].(map[string]any)
				So(analysis["overall_score"], ShouldBeBetweenOrEqual, 0, 10)
				So(analysis["content_agent"], ShouldNotBeNil)
				So(resp["enhanced_rubric"], ShouldBeNil)
			})
		})

		Convey("When requesting the rubric", func() {
			rec := postJSON(mux, "/v1/analysis", map[string]any{
				"response":       "A structured answer with clear examples and measured delivery.",
				"question":       "Describe your leadership style.",
				"include_rubric": true,
			})

			Convey("Then the enhanced rubric is attached", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				rubric := resp["enhanced_rubric"].(map[string]any)
				So(rubric["total_score"], ShouldBeBetweenOrEqual, 0, 100)
				So(rubric["grade_tier"], ShouldNotBeEmpty)
			})
		})

		Convey("When the response field is missing", func() {
			rec := postJSON(mux, "/v1/analysis", map[string]any{
				"question": "Why this company?",
			})

			Convey("Then it returns 400 with an error body", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "bad_request")
				So(resp["message"], ShouldContainSubstring, "missing response")
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/analysis", bytes.NewReader([]byte("not json")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using GET on the analysis endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When negative weights are supplied", func() {
			rec := postJSON(mux, "/v1/analysis", map[string]any{
				"response": "answer",
				"question": "question",
				"weights":  map[string]any{"content_weight": -1.0},
			})

			Convey("Then it returns 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAgentStatusEndpoint(t *testing.T) {
	Convey("Given the API server over the stub capability", t, func() {
		mux := newTestMux()

		Convey("When fetching agent status", func() {
			req := httptest.NewRequest(http.MethodGet, "/v1/agents/status", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then all agents report healthy", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["overall_status"], ShouldEqual, "healthy")
				content := resp["content_agent"].(map[string]any)
				So(content["healthy"], ShouldBeTrue)
			})
		})
	})
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newTestMux()

		Convey("When fetching stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then counters are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["analyses_total"], ShouldBeGreaterThanOrEqualTo, 0)
			})
		})

		Convey("When fetching healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then prometheus metrics are served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldNotBeEmpty)
			})
		})
	})
}
