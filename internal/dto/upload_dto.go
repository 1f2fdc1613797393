package dto

// UploadResponse is the soft-failure envelope of the artifact upload
// endpoints: the raw file is persisted even when embedding computation
// fails, in which case EmbeddingDim stays null and Message explains why.
type UploadResponse struct {
	Ok           bool    `json:"ok"`
	FileKey      string  `json:"file_key"`
	EmbeddingDim *int    `json:"embedding_dim"`
	Message      *string `json:"message,omitempty"`
}

type EmbeddingSummaryResponse struct {
	Id        uint   `json:"id"`
	SessionId uint   `json:"session_id"`
	Kind      string `json:"kind"`
	FileKey   string `json:"file_key"`
	Dim       int    `json:"dim"`
	CreatedAt string `json:"created_at"`
}

// MatchComputeResponse is the structured outcome of a match computation.
// Missing embeddings or dimension faults surface here as ok=false, never
// as transport errors.
type MatchComputeResponse struct {
	Ok      bool     `json:"ok"`
	Score   *float64 `json:"score,omitempty"`
	Percent *int     `json:"percent,omitempty"`
	Message *string  `json:"message,omitempty"`
}
