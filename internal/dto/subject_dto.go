package dto

type SubjectSummaryResponse struct {
	ExternalUserId string `json:"external_user_id"`
	DocUploaded    bool   `json:"doc_uploaded"`
	KycUploaded    bool   `json:"kyc_uploaded"`
	Percent        *int   `json:"percent"`
}

type SubjectSummaryListResponse struct {
	Items []*SubjectSummaryResponse `json:"items"`
}
