package dto

import (
	"time"
)

type CreateSessionRequest struct {
	ExternalUserId string `json:"external_user_id" validate:"required,max=100"`
}

type SessionResponse struct {
	Id             uint      `json:"id"`
	ExternalUserId string    `json:"external_user_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AddDocumentRequest struct {
	SessionId uint   `json:"-"`
	Type      string `json:"type" validate:"required,oneof=PASSPORT NRIC OTHER"`
	FileKey   string `json:"file_key" validate:"required,max=500"`
}

type DocumentResponse struct {
	Id         uint      `json:"id"`
	Type       string    `json:"type"`
	FileKey    string    `json:"file_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type SetLivenessRequest struct {
	SessionId uint   `json:"-"`
	VideoKey  string `json:"video_key" validate:"required,max=500"`
}

type LivenessResponse struct {
	VideoKey   string    `json:"video_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type UpsertMatchRequest struct {
	SessionId    uint    `json:"-"`
	MatchScore   float64 `json:"match_score" validate:"min=-1,max=1"`
	MatchPercent int     `json:"match_percent" validate:"min=0,max=100"`
	ModelVersion *string `json:"model_version"`
}

type RecordDecisionRequest struct {
	SessionId        uint    `json:"-"`
	OperatorDecision string  `json:"operator_decision" validate:"required,oneof=APPROVED REJECTED NEEDS_RETRY"`
	OperatorNote     *string `json:"operator_note"`
}

type ResultResponse struct {
	MatchScore       *float64   `json:"match_score"`
	MatchPercent     *int       `json:"match_percent"`
	ModelVersion     *string    `json:"model_version"`
	OperatorDecision *string    `json:"operator_decision"`
	OperatorNote     *string    `json:"operator_note"`
	DecidedAt        *time.Time `json:"decided_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type SessionDetailResponse struct {
	SessionResponse
	Documents []*DocumentResponse `json:"documents"`
	Liveness  *LivenessResponse   `json:"liveness"`
	Result    *ResultResponse     `json:"result"`
}

type SessionListResponse struct {
	Items  []*SessionResponse `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
