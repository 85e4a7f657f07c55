package rubric

import (
	"encoding/json"
	"time"
)

// defaultSubDimensionScore is used when a sub-dimension is missing from a
// parsed payload.
const defaultSubDimensionScore = 3.0

// Parse extracts an EnhancedScoringRubric from a capability response
// mapping. It looks for a top-level "enhanced_rubric" (or "rubric") object;
// a missing key returns nil, which signals the caller to synthesize a
// rubric from legacy scores instead. Malformed fields degrade to defaults,
// never to an error.
func Parse(resp map[string]any) *EnhancedScoringRubric {
	if resp == nil {
		return nil
	}
	data := asMap(resp["enhanced_rubric"])
	if data == nil {
		data = asMap(resp["rubric"])
	}
	if data == nil {
		return nil
	}

	verbal := parseVerbal(asMap(data["verbal_communication"]))
	readiness := parseReadiness(asMap(data["interview_readiness"]))
	nonVerbal := parseNonVerbal(asMap(data["non_verbal_communication"]))
	adaptability := parseAdaptability(asMap(data["adaptability_engagement"]))

	r := &EnhancedScoringRubric{
		VerbalCommunication:    verbal,
		InterviewReadiness:     readiness,
		NonVerbalCommunication: nonVerbal,
		AdaptabilityEngagement: adaptability,
		OverallFeedback:        getString(data, "overall_feedback"),
		TopStrengths:           getStrings(data, "top_strengths"),
		ImprovementAreas:       getStrings(data, "improvement_areas"),
		CreatedAt:              time.Now().UTC(),
	}
	r.TotalScore = TotalScore(r)
	r.GradeTier = CalculateGradeTier(r.TotalScore)
	return r
}

func parseVerbal(cat map[string]any) VerbalCommunicationScores {
	v := VerbalCommunicationScores{
		Articulation:       parseSubDimension(cat, "articulation"),
		ContentRelevance:   parseSubDimension(cat, "content_relevance"),
		Structure:          parseSubDimension(cat, "structure"),
		Vocabulary:         parseSubDimension(cat, "vocabulary"),
		DeliveryConfidence: parseSubDimension(cat, "delivery_confidence"),
		CategoryFeedback:   getString(cat, "category_feedback"),
	}
	v.CategoryScore = categoryScore(cat, v.SubDimensions(), VerbalMaxScore)
	return v
}

func parseReadiness(cat map[string]any) InterviewReadinessScores {
	r := InterviewReadinessScores{
		Preparedness:     parseSubDimension(cat, "preparedness"),
		ExampleQuality:   parseSubDimension(cat, "example_quality"),
		ProblemSolving:   parseSubDimension(cat, "problem_solving"),
		Responsiveness:   parseSubDimension(cat, "responsiveness"),
		CategoryFeedback: getString(cat, "category_feedback"),
	}
	r.CategoryScore = categoryScore(cat, r.SubDimensions(), ReadinessMaxScore)
	return r
}

func parseNonVerbal(cat map[string]any) NonVerbalCommunicationScores {
	n := NonVerbalCommunicationScores{
		EyeContact:       parseSubDimension(cat, "eye_contact"),
		BodyLanguage:     parseSubDimension(cat, "body_language"),
		VocalVariety:     parseSubDimension(cat, "vocal_variety"),
		Pacing:           parseSubDimension(cat, "pacing"),
		Engagement:       parseSubDimension(cat, "engagement"),
		CategoryFeedback: getString(cat, "category_feedback"),
	}
	n.CategoryScore = categoryScore(cat, n.SubDimensions(), NonVerbalMaxScore)
	return n
}

func parseAdaptability(cat map[string]any) AdaptabilityEngagementScores {
	a := AdaptabilityEngagementScores{
		Adaptability:     parseSubDimension(cat, "adaptability"),
		Enthusiasm:       parseSubDimension(cat, "enthusiasm"),
		ActiveListening:  parseSubDimension(cat, "active_listening"),
		CategoryFeedback: getString(cat, "category_feedback"),
	}
	a.CategoryScore = categoryScore(cat, a.SubDimensions(), AdaptabilityMaxScore)
	return a
}

// parseSubDimension reads one sub-dimension object out of a category
// mapping, defaulting missing pieces.
func parseSubDimension(cat map[string]any, field string) SubDimensionScore {
	fd := asMap(cat[field])
	score := defaultSubDimensionScore
	if v, ok := lookupFloat(fd, "score"); ok {
		score = v
	}
	return NewSubDimensionScore(score, getString(fd, "feedback"), getStrings(fd, "examples"))
}

// categoryScore prefers a declared category_score, falling back to the sum
// of sub-dimensions. Either way the result is clamped to [0, max].
func categoryScore(cat map[string]any, dims []SubDimensionScore, max float64) float64 {
	if v, ok := lookupFloat(cat, "category_score"); ok {
		return clamp(v, 0.0, max)
	}
	return CategoryTotal(dims, max)
}

// FromLegacyScores synthesizes a full rubric from legacy clarity/confidence
// scores (0-10 scale). Each of the seventeen sub-dimensions maps to the
// clarity-derived value, the confidence-derived value, or their average on
// the 1-5 scale. Suggestions are sliced into top strengths (first three)
// and improvement areas (next three).
func FromLegacyScores(clarity, confidence float64, analysis string, suggestions []string) *EnhancedScoringRubric {
	clarity5 := legacyToSubDimension(clarity)
	confidence5 := legacyToSubDimension(confidence)
	avg := (clarity5 + confidence5) / 2.0

	verbal := VerbalCommunicationScores{
		Articulation:       NewSubDimensionScore(clarity5, "Based on clarity assessment", nil),
		ContentRelevance:   NewSubDimensionScore(clarity5, "Based on content analysis", nil),
		Structure:          NewSubDimensionScore(avg, "Based on overall structure", nil),
		Vocabulary:         NewSubDimensionScore(clarity5, "Based on word choice", nil),
		DeliveryConfidence: NewSubDimensionScore(confidence5, "Based on confidence assessment", nil),
		CategoryFeedback:   firstNonEmpty(analysis, "Verbal communication assessment"),
	}
	verbal.CategoryScore = CategoryTotal(verbal.SubDimensions(), VerbalMaxScore)

	readiness := InterviewReadinessScores{
		Preparedness:     NewSubDimensionScore(avg, "Based on overall preparation", nil),
		ExampleQuality:   NewSubDimensionScore(clarity5, "Based on example quality", nil),
		ProblemSolving:   NewSubDimensionScore(avg, "Based on problem-solving approach", nil),
		Responsiveness:   NewSubDimensionScore(confidence5, "Based on responsiveness", nil),
		CategoryFeedback: "Interview readiness assessment",
	}
	readiness.CategoryScore = CategoryTotal(readiness.SubDimensions(), ReadinessMaxScore)

	nonVerbal := NonVerbalCommunicationScores{
		EyeContact:       NewSubDimensionScore(avg, "Estimated from delivery", nil),
		BodyLanguage:     NewSubDimensionScore(avg, "Estimated from delivery", nil),
		VocalVariety:     NewSubDimensionScore(confidence5, "Based on vocal confidence", nil),
		Pacing:           NewSubDimensionScore(avg, "Based on overall pacing", nil),
		Engagement:       NewSubDimensionScore(confidence5, "Based on engagement level", nil),
		CategoryFeedback: "Non-verbal communication assessment (estimated)",
	}
	nonVerbal.CategoryScore = CategoryTotal(nonVerbal.SubDimensions(), NonVerbalMaxScore)

	adaptability := AdaptabilityEngagementScores{
		Adaptability:     NewSubDimensionScore(avg, "Based on adaptability", nil),
		Enthusiasm:       NewSubDimensionScore(confidence5, "Based on enthusiasm", nil),
		ActiveListening:  NewSubDimensionScore(avg, "Based on active listening", nil),
		CategoryFeedback: "Adaptability & engagement assessment",
	}
	adaptability.CategoryScore = CategoryTotal(adaptability.SubDimensions(), AdaptabilityMaxScore)

	r := &EnhancedScoringRubric{
		VerbalCommunication:    verbal,
		InterviewReadiness:     readiness,
		NonVerbalCommunication: nonVerbal,
		AdaptabilityEngagement: adaptability,
		OverallFeedback:        firstNonEmpty(analysis, "Comprehensive interview assessment"),
		TopStrengths:           sliceRange(suggestions, 0, 3),
		ImprovementAreas:       sliceRange(suggestions, 3, 6),
		CreatedAt:              time.Now().UTC(),
	}
	r.TotalScore = TotalScore(r)
	r.GradeTier = CalculateGradeTier(r.TotalScore)
	return r
}

// legacyToSubDimension maps a 0-10 legacy score onto the 1-5 sub-dimension
// scale, defaulting non-positive input to the neutral midpoint.
func legacyToSubDimension(score float64) float64 {
	if score <= 0 {
		return defaultSubDimensionScore
	}
	return clamp(score, 0.0, legacyScaleMax) / legacyScaleMax * SubDimensionMax
}

func firstNonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// sliceRange returns s[from:to] bounded by len(s); never nil.
func sliceRange(s []string, from, to int) []string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	out := make([]string, 0, to-from)
	out = append(out, s[from:to]...)
	return out
}

// asMap coerces a decoded JSON value to a string-keyed map, or nil.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getStrings(m map[string]any, key string) []string {
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
