package matching

import (
	"errors"
	"fmt"
	"math"
)

// ModelVersion tags results produced by this engine.
const ModelVersion = "cosine-v1"

const normEpsilon = 1e-8

// ErrInsufficientEmbeddings means one or both vectors are absent. It is a
// structured "not ok" outcome, reported to the caller rather than raised
// across the API boundary.
var ErrInsufficientEmbeddings = errors.New("need both FACE and DOCUMENT embeddings")

// DimensionMismatchError is an internal-consistency fault: two embeddings
// under comparison have different lengths. Never silently truncated.
type DimensionMismatchError struct {
	FaceDim     int
	DocumentDim int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: face=%d document=%d", e.FaceDim, e.DocumentDim)
}

// Compute re-normalizes both vectors to unit L2 norm (the ledger stores
// unit vectors, but upstream normalization is not trusted), takes their
// dot product as the cosine score in [-1, 1], and maps it onto a percent:
//
//	percent = round(((score + 1) / 2) * 100)
//
// Rounding is half-away-from-zero (math.Round); tests pin exact values.
func Compute(face, document []float32) (float64, int, error) {
	if len(face) == 0 || len(document) == 0 {
		return 0, 0, ErrInsufficientEmbeddings
	}
	if len(face) != len(document) {
		return 0, 0, &DimensionMismatchError{FaceDim: len(face), DocumentDim: len(document)}
	}

	fNorm := l2norm(face)
	dNorm := l2norm(document)

	var dot float64
	for i := range face {
		dot += (float64(face[i]) / fNorm) * (float64(document[i]) / dNorm)
	}

	percent := int(math.Round(((dot + 1.0) / 2.0) * 100))
	return dot, percent, nil
}

func l2norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm < normEpsilon {
		return normEpsilon
	}
	return norm
}
