package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to the inference sidecar that hosts the ONNX face and
// document encoders. The sidecar owns all model handles; this client is a
// thin, stateless wrapper and is safe for concurrent use.
type HTTPProvider struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) Provider {
	if baseURL == "" {
		baseURL = "http://localhost:8500"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Image string `json:"image"` // base64-encoded
	Kind  string `json:"kind"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *HTTPProvider) ComputeEmbedding(ctx context.Context, image []byte, kind Kind) ([]float32, error) {
	reqBody := embedRequest{
		Image: base64.StdEncoding.EncodeToString(image),
		Kind:  string(kind),
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/embeddings", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(ReasonModelUnavailable, err.Error())
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(ReasonModelUnavailable, err.Error())
	}

	var embedResp embedResponse
	if err := json.Unmarshal(bodyBytes, &embedResp); err != nil {
		return nil, NewProviderError(ReasonModelUnavailable, fmt.Sprintf("malformed inference response: %v", err))
	}

	if embedResp.Error != nil {
		return nil, NewProviderError(reasonFromCode(embedResp.Error.Code), embedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(ReasonModelUnavailable, fmt.Sprintf("inference service returned %d", resp.StatusCode))
	}
	if len(embedResp.Embedding) == 0 {
		return nil, NewProviderError(ReasonModelUnavailable, "inference service returned an empty vector")
	}

	values := make([]float32, len(embedResp.Embedding))
	for i, v := range embedResp.Embedding {
		values[i] = float32(v)
	}
	return values, nil
}

func reasonFromCode(code string) FailureReason {
	switch code {
	case "NO_FACE_DETECTED":
		return ReasonNoFaceDetected
	case "DECODE_FAILED":
		return ReasonDecodeFailed
	default:
		return ReasonModelUnavailable
	}
}
