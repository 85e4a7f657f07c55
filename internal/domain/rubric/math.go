package rubric

// Grade tier thresholds on the 0-100 total.
//
// The Strong lower bound is 72: the legacy system's rubric tests pinned
// 72.0 as Strong and 71.9 as Average, so that value is kept here even
// though one of its utility modules used 75.
const (
	excellentLowerBound = 90.0
	strongLowerBound    = 72.0
	averageLowerBound   = 60.0
)

// Total score bounds.
const (
	totalMin = 0.0
	totalMax = 100.0
)

// legacy scale bounds for the 0-10 <-> 0-100 conversion boundary.
const (
	legacyScaleMax = 10.0
)

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalculateGradeTier buckets a 0-100 total score into a grade tier.
func CalculateGradeTier(totalScore float64) GradeTier {
	switch {
	case totalScore >= excellentLowerBound:
		return GradeExcellent
	case totalScore >= strongLowerBound:
		return GradeStrong
	case totalScore >= averageLowerBound:
		return GradeAverage
	default:
		return GradeAtRisk
	}
}

// Convert10To100 converts a 0-10 score to the 0-100 scale, clamping
// out-of-range input. This is the single conversion boundary between the
// agent pipeline's 0-10 scale and the rubric's 100-point total.
func Convert10To100(score10 float64) float64 {
	return clamp(score10*legacyScaleMax, totalMin, totalMax)
}

// Convert100To10 converts a 0-100 score to the 0-10 scale, clamping
// out-of-range input.
func Convert100To10(score100 float64) float64 {
	return clamp(score100/legacyScaleMax, 0.0, legacyScaleMax)
}

// NewSubDimensionScore creates a SubDimensionScore, clamping the score to
// the 1-5 range. Examples may be nil; the stored slice is never nil.
func NewSubDimensionScore(score float64, feedback string, examples []string) SubDimensionScore {
	if examples == nil {
		examples = []string{}
	}
	return SubDimensionScore{
		Score:    clamp(score, SubDimensionMin, SubDimensionMax),
		Feedback: feedback,
		Examples: examples,
	}
}

// CategoryTotal sums sub-dimension scores, clamped to [0, max].
func CategoryTotal(dims []SubDimensionScore, max float64) float64 {
	total := 0.0
	for _, d := range dims {
		total += d.Score
	}
	return clamp(total, 0.0, max)
}

// TotalScore sums the four category scores, clamped to [0, 100].
func TotalScore(r *EnhancedScoringRubric) float64 {
	total := r.VerbalCommunication.CategoryScore +
		r.InterviewReadiness.CategoryScore +
		r.NonVerbalCommunication.CategoryScore +
		r.AdaptabilityEngagement.CategoryScore
	return clamp(total, totalMin, totalMax)
}
