package embedding

import "context"

// Kind selects which encoder the provider runs against the image.
type Kind string

const (
	KindFace     Kind = "FACE"
	KindDocument Kind = "DOCUMENT"
)

// Provider computes a fixed-dimension feature vector from raw image bytes.
// Implementations hold their model handles internally and must be safe for
// concurrent use; the process constructs one instance at startup and shares
// it across requests. Returned vectors are finite-valued and non-empty but
// need not be pre-normalized.
type Provider interface {
	ComputeEmbedding(ctx context.Context, image []byte, kind Kind) ([]float32, error)
}
