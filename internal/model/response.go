package model

// ErrorResponse - 모든 에러 응답 공통 포맷
// Error 는 기계 판독용 코드 (not_found, validation_error ...)
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const (
	ErrCodeNotFound      = "not_found"
	ErrCodeValidation    = "validation_error"
	ErrCodeConfiguration = "configuration_error"
	ErrCodeUpstream      = "upstream_error"
	ErrCodeRateLimited   = "rate_limit_exceeded"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeInternal      = "internal_error"
)

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status    string              `json:"status"`
	Message   string              `json:"message"`
	Endpoints map[string][]string `json:"endpoints"`
}
