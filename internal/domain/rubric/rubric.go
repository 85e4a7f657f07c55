// Package rubric implements the 100-point interview scoring rubric: four
// categories, seventeen 1-5 sub-dimensions, and the grade-tier buckets
// derived from the total.
package rubric

import "time"

// GradeTier is the coarse qualitative bucket derived from the total score.
type GradeTier string

// Grade tiers, from best to worst.
const (
	GradeExcellent GradeTier = "Excellent"
	GradeStrong    GradeTier = "Strong"
	GradeAverage   GradeTier = "Average"
	GradeAtRisk    GradeTier = "At Risk"
)

// Per-category score caps. Together they bound the total at 100.
const (
	VerbalMaxScore       = 40.0
	ReadinessMaxScore    = 20.0
	NonVerbalMaxScore    = 25.0
	AdaptabilityMaxScore = 15.0
)

// Sub-dimension score bounds (1-5 scale).
const (
	SubDimensionMin = 1.0
	SubDimensionMax = 5.0
)

// SubDimensionScore is the atomic rubric unit: a 1-5 score with feedback
// and supporting examples. Created fresh per analysis, never mutated.
type SubDimensionScore struct {
	Score    float64  `json:"score"`
	Feedback string   `json:"feedback"`
	Examples []string `json:"examples"`
}

// VerbalCommunicationScores groups the five verbal communication
// sub-dimensions.
type VerbalCommunicationScores struct {
	Articulation       SubDimensionScore `json:"articulation"`
	ContentRelevance   SubDimensionScore `json:"content_relevance"`
	Structure          SubDimensionScore `json:"structure"`
	Vocabulary         SubDimensionScore `json:"vocabulary"`
	DeliveryConfidence SubDimensionScore `json:"delivery_confidence"`
	CategoryScore      float64           `json:"category_score"`
	CategoryFeedback   string            `json:"category_feedback"`
}

// SubDimensions returns the category's sub-dimension scores in rubric order.
func (v VerbalCommunicationScores) SubDimensions() []SubDimensionScore {
	return []SubDimensionScore{v.Articulation, v.ContentRelevance, v.Structure, v.Vocabulary, v.DeliveryConfidence}
}

// InterviewReadinessScores groups the four interview readiness sub-dimensions.
type InterviewReadinessScores struct {
	Preparedness     SubDimensionScore `json:"preparedness"`
	ExampleQuality   SubDimensionScore `json:"example_quality"`
	ProblemSolving   SubDimensionScore `json:"problem_solving"`
	Responsiveness   SubDimensionScore `json:"responsiveness"`
	CategoryScore    float64           `json:"category_score"`
	CategoryFeedback string            `json:"category_feedback"`
}

// SubDimensions returns the category's sub-dimension scores in rubric order.
func (r InterviewReadinessScores) SubDimensions() []SubDimensionScore {
	return []SubDimensionScore{r.Preparedness, r.ExampleQuality, r.ProblemSolving, r.Responsiveness}
}

// NonVerbalCommunicationScores groups the five non-verbal sub-dimensions.
type NonVerbalCommunicationScores struct {
	EyeContact       SubDimensionScore `json:"eye_contact"`
	BodyLanguage     SubDimensionScore `json:"body_language"`
	VocalVariety     SubDimensionScore `json:"vocal_variety"`
	Pacing           SubDimensionScore `json:"pacing"`
	Engagement       SubDimensionScore `json:"engagement"`
	CategoryScore    float64           `json:"category_score"`
	CategoryFeedback string            `json:"category_feedback"`
}

// SubDimensions returns the category's sub-dimension scores in rubric order.
func (n NonVerbalCommunicationScores) SubDimensions() []SubDimensionScore {
	return []SubDimensionScore{n.EyeContact, n.BodyLanguage, n.VocalVariety, n.Pacing, n.Engagement}
}

// AdaptabilityEngagementScores groups the three adaptability sub-dimensions.
type AdaptabilityEngagementScores struct {
	Adaptability     SubDimensionScore `json:"adaptability"`
	Enthusiasm       SubDimensionScore `json:"enthusiasm"`
	ActiveListening  SubDimensionScore `json:"active_listening"`
	CategoryScore    float64           `json:"category_score"`
	CategoryFeedback string            `json:"category_feedback"`
}

// SubDimensions returns the category's sub-dimension scores in rubric order.
func (a AdaptabilityEngagementScores) SubDimensions() []SubDimensionScore {
	return []SubDimensionScore{a.Adaptability, a.Enthusiasm, a.ActiveListening}
}

// EnhancedScoringRubric is the full 100-point assessment: the four category
// scores, the clamped total, the derived grade tier, and overall feedback.
type EnhancedScoringRubric struct {
	VerbalCommunication    VerbalCommunicationScores    `json:"verbal_communication"`
	InterviewReadiness     InterviewReadinessScores     `json:"interview_readiness"`
	NonVerbalCommunication NonVerbalCommunicationScores `json:"non_verbal_communication"`
	AdaptabilityEngagement AdaptabilityEngagementScores `json:"adaptability_engagement"`
	TotalScore             float64                      `json:"total_score"`
	GradeTier              GradeTier                    `json:"grade_tier"`
	OverallFeedback        string                       `json:"overall_feedback"`
	TopStrengths           []string                     `json:"top_strengths"`
	ImprovementAreas       []string                     `json:"improvement_areas"`
	CreatedAt              time.Time                    `json:"created_at"`
}
