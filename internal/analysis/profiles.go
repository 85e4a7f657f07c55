package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Strategy names. These flow into metric labels and health reports.
const (
	StrategyContent   = "content"
	StrategyDelivery  = "delivery"
	StrategyTechnical = "technical"
)

// Heuristic scoring constants shared by the profile fallbacks.
const (
	heuristicLengthDivisor = 50.0
	longResponseThreshold  = 100
	techTermScoreFactor    = 2.0
)

// ContentProfile evaluates relevance, completeness, structure, keyword
// coverage and example quality.
func ContentProfile() Profile {
	return Profile{
		Name:  StrategyContent,
		Label: "content",
		SystemPrompt: "You are a content analysis expert specializing in evaluating interview answers. " +
			"Focus on content relevance, completeness, structure, and quality of examples. " +
			"Be objective, constructive, and provide actionable feedback.",
		MetricWeights: []MetricWeight{
			{Key: "relevance_score", Weight: 0.3},
			{Key: "completeness_score", Weight: 0.25},
			{Key: "structure_score", Weight: 0.2},
			{Key: "keyword_coverage", Weight: 0.15},
			{Key: "example_quality", Weight: 0.1},
		},
		Keys: ReportKeys{
			Strengths:   "strengths",
			Weaknesses:  "weaknesses",
			Missing:     "missing_elements",
			Suggestions: "improvement_suggestions",
		},
		DefaultStrength: "Answer provided",
		FeedbackBands: FeedbackBands{
			Excellent: "Excellent content quality with strong relevance and completeness.",
			Good:      "Good content quality with room for improvement in some areas.",
			Poor:      "Content needs significant improvement in relevance and structure.",
		},
		StrengthsLabel: "Strengths",
		StrengthsLimit: 3,
		LowRecs: []string{
			"Focus on directly addressing the question asked",
			"Provide more specific examples and details",
		},
		MidRecs: []string{
			"Enhance the structure and organization of your answer",
			"Include more relevant technical terms and concepts",
		},
		BuildPrompt: contentPrompt,
		Heuristic:   contentHeuristic,
	}
}

// DeliveryProfile evaluates clarity, confidence, structure, conciseness and
// professional tone.
func DeliveryProfile() Profile {
	return Profile{
		Name:  StrategyDelivery,
		Label: "delivery",
		SystemPrompt: "You are a communication analysis expert specializing in evaluating interview answer delivery. " +
			"Focus on clarity, confidence, structure, conciseness, and professional tone. " +
			"Be objective and provide constructive feedback for improvement.",
		MetricWeights: []MetricWeight{
			{Key: "clarity_score", Weight: 0.3},
			{Key: "confidence_score", Weight: 0.25},
			{Key: "structure_score", Weight: 0.2},
			{Key: "conciseness_score", Weight: 0.15},
			{Key: "professional_tone_score", Weight: 0.1},
		},
		Keys: ReportKeys{
			Strengths:   "communication_strengths",
			Weaknesses:  "communication_weaknesses",
			Suggestions: "improvement_suggestions",
			Tone:        "tone_analysis",
		},
		DefaultStrength: "Response provided",
		FeedbackBands: FeedbackBands{
			Excellent: "Excellent communication with clear, confident delivery.",
			Good:      "Good communication with some areas for improvement.",
			Poor:      "Communication needs improvement in clarity and confidence.",
		},
		StrengthsLabel: "Communication strengths",
		StrengthsLimit: 2,
		LowRecs: []string{
			"Practice speaking more clearly and confidently",
			"Structure your answers with clear beginning, middle, and end",
		},
		MidRecs: []string{
			"Work on being more concise while maintaining detail",
			"Practice maintaining professional tone throughout",
		},
		MetricRecs: []MetricRec{
			{Key: "clarity_score", Text: "Focus on clear, simple language and avoid jargon"},
			{Key: "confidence_score", Text: "Practice confident delivery and avoid hedging language"},
			{Key: "structure_score", Text: "Use clear transitions and logical flow in your answers"},
		},
		ExtraFeedback: func(r Report) []string {
			if r.Tone != "" && r.Tone != "professional" {
				return []string{fmt.Sprintf("Consider adjusting tone to be more %s", r.Tone)}
			}
			return nil
		},
		BuildPrompt: deliveryPrompt,
		Heuristic:   deliveryHeuristic,
	}
}

// TechnicalProfile evaluates accuracy, depth, relevance, terminology and
// problem-solving approach.
func TechnicalProfile() Profile {
	return Profile{
		Name:  StrategyTechnical,
		Label: "technical",
		SystemPrompt: "You are a technical analysis expert specializing in evaluating interview answers for technical accuracy. " +
			"Focus on technical correctness, depth of knowledge, relevance, terminology, and problem-solving approach. " +
			"Be objective and provide constructive feedback for technical improvement.",
		MetricWeights: []MetricWeight{
			{Key: "accuracy_score", Weight: 0.3},
			{Key: "depth_score", Weight: 0.25},
			{Key: "relevance_score", Weight: 0.2},
			{Key: "terminology_score", Weight: 0.15},
			{Key: "problem_solving_score", Weight: 0.1},
		},
		Keys: ReportKeys{
			Strengths:   "technical_strengths",
			Weaknesses:  "technical_weaknesses",
			Missing:     "missing_concepts",
			Incorrect:   "incorrect_concepts",
			Suggestions: "improvement_suggestions",
		},
		DefaultStrength: "Response provided",
		FeedbackBands: FeedbackBands{
			Excellent: "Excellent technical knowledge with accurate and deep understanding.",
			Good:      "Good technical knowledge with some areas for improvement.",
			Poor:      "Technical knowledge needs improvement in accuracy and depth.",
		},
		StrengthsLabel: "Technical strengths",
		StrengthsLimit: 2,
		LowRecs: []string{
			"Review fundamental concepts and terminology",
			"Practice explaining technical concepts clearly",
		},
		MidRecs: []string{
			"Deepen understanding of advanced concepts",
			"Practice technical problem-solving approaches",
		},
		MetricRecs: []MetricRec{
			{Key: "accuracy_score", Text: "Verify technical facts and concepts before answering"},
			{Key: "depth_score", Text: "Provide more detailed technical explanations"},
			{Key: "terminology_score", Text: "Use appropriate technical terminology correctly"},
			{Key: "problem_solving_score", Text: "Structure technical problem-solving with clear steps"},
		},
		ExtraFeedback: func(r Report) []string {
			var parts []string
			if len(r.Incorrect) > 0 {
				parts = append(parts, fmt.Sprintf("Review these concepts: %s", strings.Join(firstN(r.Incorrect, 2), ", ")))
			}
			if len(r.Missing) > 0 {
				parts = append(parts, fmt.Sprintf("Consider including: %s", strings.Join(firstN(r.Missing, 2), ", ")))
			}
			return parts
		},
		BuildPrompt: technicalPrompt,
		Heuristic:   technicalHeuristic,
	}
}

// Profiles returns the three strategy profiles in canonical order.
func Profiles() []Profile {
	return []Profile{ContentProfile(), DeliveryProfile(), TechnicalProfile()}
}

func contentPrompt(in Input) string {
	return fmt.Sprintf(`Analyze the content quality of this interview answer for a %s position.

Question: %s
Job Description: %s
Candidate's Answer: %s

Evaluate the following aspects and provide scores (1-10) and detailed feedback:

1. RELEVANCE: How well does the answer address the specific question asked?
2. COMPLETENESS: Does the answer cover all important aspects of the question?
3. STRUCTURE: Is the answer well-organized and easy to follow?
4. KEYWORD COVERAGE: Does the answer include relevant technical terms and concepts?
5. EXAMPLE QUALITY: Are the examples specific, relevant, and well-explained?

Provide your analysis in this JSON format:
{
    "relevance_score": <score 1-10>,
    "completeness_score": <score 1-10>,
    "structure_score": <score 1-10>,
    "keyword_coverage": <score 1-10>,
    "example_quality": <score 1-10>,
    "confidence": <confidence 0.0-1.0>,
    "strengths": ["strength1", "strength2"],
    "weaknesses": ["weakness1", "weakness2"],
    "missing_elements": ["element1", "element2"],
    "improvement_suggestions": ["suggestion1", "suggestion2"]
}`, in.Role, in.Question, in.JobDescription, in.Response)
}

func deliveryPrompt(in Input) string {
	return fmt.Sprintf(`Analyze the communication and delivery quality of this interview answer.

Question: %s
Job Description: %s
Candidate's Answer: %s

Evaluate the following delivery aspects and provide scores (1-10) and detailed feedback:

1. CLARITY: Is the answer clear, well-articulated, and easy to understand?
2. CONFIDENCE: Does the candidate sound confident and assured in their response?
3. STRUCTURE: Is the answer well-organized with logical flow and transitions?
4. CONCISENESS: Is the answer appropriately detailed without being too verbose or too brief?
5. PROFESSIONAL TONE: Does the answer maintain a professional and appropriate tone?

Provide your analysis in this JSON format:
{
    "clarity_score": <score 1-10>,
    "confidence_score": <score 1-10>,
    "structure_score": <score 1-10>,
    "conciseness_score": <score 1-10>,
    "professional_tone_score": <score 1-10>,
    "confidence": <confidence 0.0-1.0>,
    "communication_strengths": ["strength1", "strength2"],
    "communication_weaknesses": ["weakness1", "weakness2"],
    "tone_analysis": "professional/casual/uncertain/etc",
    "improvement_suggestions": ["suggestion1", "suggestion2"]
}`, in.Question, in.JobDescription, in.Response)
}

func technicalPrompt(in Input) string {
	return fmt.Sprintf(`Analyze the technical accuracy and domain knowledge of this interview answer for a %s position.

Question: %s
Job Description: %s
Candidate's Answer: %s

Evaluate the following technical aspects and provide scores (1-10) and detailed feedback:

1. ACCURACY: Are the technical concepts, facts, and information correct?
2. DEPTH: Does the answer demonstrate deep understanding of the technical concepts?
3. RELEVANCE: Are the technical details relevant to the question and role?
4. TERMINOLOGY: Is appropriate technical terminology used correctly?
5. PROBLEM-SOLVING: Does the answer demonstrate good technical problem-solving approach?

Provide your analysis in this JSON format:
{
    "accuracy_score": <score 1-10>,
    "depth_score": <score 1-10>,
    "relevance_score": <score 1-10>,
    "terminology_score": <score 1-10>,
    "problem_solving_score": <score 1-10>,
    "confidence": <confidence 0.0-1.0>,
    "technical_strengths": ["strength1", "strength2"],
    "technical_weaknesses": ["weakness1", "weakness2"],
    "incorrect_concepts": ["concept1", "concept2"],
    "missing_concepts": ["concept1", "concept2"],
    "improvement_suggestions": ["suggestion1", "suggestion2"]
}`, in.Role, in.Question, in.JobDescription, in.Response)
}

// lengthScore is the shared length heuristic: one point per 50 characters,
// clamped to [1, 10].
func lengthScore(response string) float64 {
	return math.Min(10, math.Max(1, float64(len(response))/heuristicLengthDivisor))
}

func contentHeuristic(in Input) Heuristic {
	length := lengthScore(in.Response)
	structure := 5.0
	if len(in.Response) > longResponseThreshold {
		structure = 7.0
	}
	overall := (length + structure) / 2
	return Heuristic{
		Score: overall,
		Metrics: map[string]float64{
			"relevance_score":    overall,
			"completeness_score": overall,
			"structure_score":    structure,
			"keyword_coverage":   overall,
			"example_quality":    overall,
		},
	}
}

func deliveryHeuristic(in Input) Heuristic {
	length := lengthScore(in.Response)
	structure := 5.0
	if len(in.Response) > longResponseThreshold {
		structure = 7.0
	}
	bonus := 0.0
	if len(strings.Split(in.Response, ".")) > 1 {
		bonus++
	}
	if len(strings.Split(in.Response, "\n")) > 1 {
		bonus++
	}
	overall := (length + structure + bonus) / 3
	return Heuristic{
		Score: overall,
		Metrics: map[string]float64{
			"clarity_score":           overall,
			"confidence_score":        overall,
			"structure_score":         structure + bonus,
			"conciseness_score":       overall,
			"professional_tone_score": overall,
		},
	}
}

// roleTechTerms maps roles to the vocabulary the technical heuristic scans
// for when the capability is unavailable.
var roleTechTerms = map[string][]string{
	"software_engineer": {"algorithm", "data structure", "api", "database", "framework", "library", "code", "function", "class", "method"},
	"data_scientist":    {"machine learning", "model", "algorithm", "data", "analysis", "statistics", "python", "r", "pandas", "numpy"},
	"product_manager":   {"user story", "requirement", "feature", "roadmap", "stakeholder", "metrics", "kpi", "agile", "sprint", "backlog"},
	"default":           {"technical", "system", "process", "method", "approach", "solution", "implementation", "architecture", "design", "development"},
}

func countTechTerms(response, role string) int {
	terms, ok := roleTechTerms[strings.ToLower(role)]
	if !ok {
		terms = roleTechTerms["default"]
	}
	lower := strings.ToLower(response)
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

func technicalHeuristic(in Input) Heuristic {
	length := lengthScore(in.Response)
	terms := countTechTerms(in.Response, in.Role)
	techScore := math.Min(10, math.Max(1, float64(terms)*techTermScoreFactor))
	overall := (length + techScore) / 2
	return Heuristic{
		Score: overall,
		Metrics: map[string]float64{
			"accuracy_score":        overall,
			"depth_score":           overall,
			"relevance_score":       overall,
			"terminology_score":     techScore,
			"problem_solving_score": overall,
		},
		Details: map[string]any{"technical_terms": terms},
	}
}
