package embedding

import "math"

const normEpsilon = 1e-8

// Normalize scales vec to unit L2 norm. The norm is floored at 1e-8 so a
// degenerate all-zero vector maps to zeros instead of dividing by zero.
// Stored ledger vectors are normalized with this at write time.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm < normEpsilon {
		norm = normEpsilon
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / norm)
	}
	return normalized
}
