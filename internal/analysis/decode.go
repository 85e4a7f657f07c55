package analysis

import (
	"encoding/json"
	"strings"
)

// Defaults substituted when a capability response cannot be decoded.
const (
	defaultMetricScore      = 7.0
	defaultParsedConfidence = 0.8
	parseFallbackConfidence = 0.6
)

// ReportKeys names the qualitative list fields in a strategy's expected
// JSON shape. Empty keys are simply not read.
type ReportKeys struct {
	Strengths   string
	Weaknesses  string
	Missing     string
	Incorrect   string
	Suggestions string
	Tone        string
}

// Report is the typed projection of one capability response for a single
// strategy. It is always usable: decode failures substitute the strategy's
// structured defaults and clear Parsed.
type Report struct {
	Metrics     map[string]float64
	Confidence  float64
	Strengths   []string
	Weaknesses  []string
	Missing     []string
	Incorrect   []string
	Suggestions []string
	Tone        string
	Parsed      bool
	Raw         map[string]any
}

// decodeReport turns a capability response into a Report using the
// profile's key mapping. This is the single boundary where "might be
// garbage text" is handled; everything downstream sees structured data.
func (p Profile) decodeReport(resp Response) Report {
	data := resp.Data
	if data == nil {
		data = extractJSON(resp.Text)
	}
	if data == nil {
		return p.defaultReport()
	}

	r := Report{
		Metrics:     map[string]float64{},
		Confidence:  defaultParsedConfidence,
		Strengths:   getStrings(data, p.Keys.Strengths),
		Weaknesses:  getStrings(data, p.Keys.Weaknesses),
		Missing:     getStrings(data, p.Keys.Missing),
		Incorrect:   getStrings(data, p.Keys.Incorrect),
		Suggestions: getStrings(data, p.Keys.Suggestions),
		Tone:        getString(data, p.Keys.Tone),
		Parsed:      true,
		Raw:         data,
	}
	for _, mw := range p.MetricWeights {
		if v, ok := lookupFloat(data, mw.Key); ok {
			r.Metrics[mw.Key] = v
		}
	}
	if v, ok := lookupFloat(data, "confidence"); ok {
		r.Confidence = v
	}
	return r
}

// defaultReport is the structured-defaults fallback used when no JSON can
// be decoded from the response: all sub-metrics at 7, reduced confidence.
func (p Profile) defaultReport() Report {
	metrics := make(map[string]float64, len(p.MetricWeights))
	for _, mw := range p.MetricWeights {
		metrics[mw.Key] = defaultMetricScore
	}
	return Report{
		Metrics:     metrics,
		Confidence:  parseFallbackConfidence,
		Strengths:   []string{p.DefaultStrength},
		Weaknesses:  []string{"Analysis parsing failed"},
		Missing:     []string{},
		Incorrect:   []string{},
		Suggestions: []string{"Provide more detailed analysis"},
		Parsed:      false,
		Raw:         map[string]any{},
	}
}

// extractJSON locates the outermost JSON object embedded in raw text and
// decodes it. Returns nil when no decodable object exists.
func extractJSON(text string) map[string]any {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &data); err != nil {
		// The widest slice may span prose between objects; retry with a
		// narrowing scan from the last closing brace backwards.
		for end > start {
			end = strings.LastIndexByte(text[:end], '}')
			if end <= start {
				return nil
			}
			if json.Unmarshal([]byte(text[start:end+1]), &data) == nil {
				return data
			}
		}
		return nil
	}
	return data
}

func getString(m map[string]any, key string) string {
	if key == "" {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func getStrings(m map[string]any, key string) []string {
	if key == "" {
		return []string{}
	}
	raw, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// lookupFloat reads a numeric value tolerant of the types JSON decoding
// can produce.
func lookupFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
