// Watermark survival scoring.
package watermarklab

import (
	"fmt"
	"math"
)

// BER returns the bit error rate between the original and extracted
// watermarks: differing pixels over total pixels. Comparing watermarks of
// different dimensions is an error, not a worst-case score.
func BER(orig, extracted *Watermark) (float64, error) {
	if orig.Width() != extracted.Width() || orig.Height() != extracted.Height() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			orig.Width(), orig.Height(), extracted.Width(), extracted.Height())
	}
	diff := 0
	for r, row := range orig.Bits {
		for c, bit := range row {
			if bit != extracted.Bits[r][c] {
				diff++
			}
		}
	}
	return float64(diff) / float64(orig.Width()*orig.Height()), nil
}

// NC returns the normalized cross-correlation between the two watermarks,
// mapping bits to +-1. When either side has zero energy the correlation is
// 0 by convention.
func NC(orig, extracted *Watermark) (float64, error) {
	if orig.Width() != extracted.Width() || orig.Height() != extracted.Height() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			orig.Width(), orig.Height(), extracted.Width(), extracted.Height())
	}
	var dot, na, nb float64
	for r, row := range orig.Bits {
		for c, bit := range row {
			a, b := -1.0, -1.0
			if bit {
				a = 1
			}
			if extracted.Bits[r][c] {
				b = 1
			}
			dot += a * b
			na += a * a
			nb += b * b
		}
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// RatingScale maps BER and NC values onto quality tiers. Bounds are upper
// BER limits (ascending) and lower NC limits (descending) for the first
// three tiers; anything beyond falls into the last tier.
type RatingScale struct {
	BERBounds [3]float64
	NCBounds  [3]float64
	Labels    [4]string
}

// DefaultRatingScale reproduces the conventional banding: BER below
// 0.05/0.15/0.30 and NC above 0.95/0.85/0.75.
var DefaultRatingScale = RatingScale{
	BERBounds: [3]float64{0.05, 0.15, 0.30},
	NCBounds:  [3]float64{0.95, 0.85, 0.75},
	Labels:    [4]string{"Excellent", "Good", "Fair", "Poor"},
}

// RateBER returns the tier index (0 best) for a bit error rate.
func (s RatingScale) RateBER(ber float64) int {
	for i, bound := range s.BERBounds {
		if ber < bound {
			return i
		}
	}
	return 3
}

// RateNC returns the tier index (0 best) for a normalized correlation.
func (s RatingScale) RateNC(nc float64) int {
	for i, bound := range s.NCBounds {
		if nc > bound {
			return i
		}
	}
	return 3
}

// Rate returns the label of the worse of the BER and NC tiers.
func (s RatingScale) Rate(ber, nc float64) string {
	tier := s.RateBER(ber)
	if t := s.RateNC(nc); t > tier {
		tier = t
	}
	return s.Labels[tier]
}

// EvaluationResult records the outcome of one embedding-versus-attack
// combination. Results are append-only: created once, never mutated.
type EvaluationResult struct {
	TestID       int
	Attack       string
	AttackParams string
	Method       Method
	Component    Component
	MethodParams string
	BER          float64
	NC           float64
	PSNR         float64
	Rating       string
}
