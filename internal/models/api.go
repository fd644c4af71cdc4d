package models

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type QueryResponse struct {
	Mode string `json:"mode"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type ScreenRequest struct {
	Role        string   `json:"role" validate:"required"`
	DocumentIDs []string `json:"document_ids" validate:"required,min=1,dive,uuid"`
}

type ScreenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type VerdictData struct {
	Filename        string  `json:"filename"`
	WeightedAverage float64 `json:"weighted_average"`
	Verdict         string  `json:"verdict"`
	Reasoning       string  `json:"reasoning"`
}

type BatchResultResponse struct {
	ID           string        `json:"id"`
	Role         string        `json:"role"`
	Status       string        `json:"status"`
	Results      []VerdictData `json:"results,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type PolicyRequest struct {
	Question string `json:"question" validate:"required"`
}

type PolicyResponse struct {
	Answer string `json:"answer"`
}

type ManualOnboardRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Template     string `json:"template"`
	GeneratePlan bool   `json:"generate_plan"`
}

type OnboardResult struct {
	Candidate string `json:"candidate"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

type BulkOnboardResponse struct {
	Sent   []OnboardResult `json:"sent"`
	Failed []OnboardResult `json:"failed"`
}
