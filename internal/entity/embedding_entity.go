package entity

import "time"

type EmbeddingKind string

const (
	EmbeddingKindFace     EmbeddingKind = "FACE"
	EmbeddingKindDocument EmbeddingKind = "DOCUMENT"
)

func (k EmbeddingKind) Valid() bool {
	return k == EmbeddingKindFace || k == EmbeddingKindDocument
}

// Embedding is one biometric feature vector derived from an artifact.
// Rows are append-only; "latest" means greatest id for a session+kind.
// Vectors are unit L2-normalized at write time.
type Embedding struct {
	Id        uint
	SessionId uint
	Kind      EmbeddingKind
	Vector    []float32
	Dim       int
	FileKey   string
	CreatedAt time.Time
}
