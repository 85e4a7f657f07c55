package score

import "math"

// Default combination weights (content/delivery/technical).
const (
	DefaultContentWeight   = 0.4
	DefaultDeliveryWeight  = 0.3
	DefaultTechnicalWeight = 0.3
)

// weightEpsilon guards the renormalization division.
const weightEpsilon = 1e-9

// ScoringWeights holds the per-agent combination weights. Construct with
// any non-negative values; Normalized returns the canonical form whose
// components sum to 1.0.
type ScoringWeights struct {
	Content   float64 `json:"content_weight"`
	Delivery  float64 `json:"delivery_weight"`
	Technical float64 `json:"technical_weight"`
}

// DefaultWeights returns the process-wide default weights.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Content:   DefaultContentWeight,
		Delivery:  DefaultDeliveryWeight,
		Technical: DefaultTechnicalWeight,
	}
}

// Normalized returns weights scaled to sum to 1.0. Weights that sum to
// zero (or are all negative) fall back to the defaults so a combination is
// always well-defined.
func (w ScoringWeights) Normalized() ScoringWeights {
	total := w.Content + w.Delivery + w.Technical
	if total <= weightEpsilon {
		return DefaultWeights()
	}
	if math.Abs(total-1.0) <= weightEpsilon {
		return w
	}
	return ScoringWeights{
		Content:   w.Content / total,
		Delivery:  w.Delivery / total,
		Technical: w.Technical / total,
	}
}

// Combine computes the weighted overall score from the three agent scores
// using the normalized weights.
func (w ScoringWeights) Combine(content, delivery, technical float64) float64 {
	n := w.Normalized()
	return content*n.Content + delivery*n.Delivery + technical*n.Technical
}
