package model

import "time"

// ============================================================================
// Incident 상태/우선순위/카테고리 값
// ============================================================================

const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"

	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"

	CategoryHardware = "Hardware"
	CategorySoftware = "Software"
	CategoryServices = "Services"
)

var (
	IncidentStatuses   = []string{StatusOpen, StatusInProgress, StatusClosed}
	IncidentPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	IncidentCategories = []string{CategoryHardware, CategorySoftware, CategoryServices}
)

// ============================================================================
// Incident 모델
// ============================================================================

// Incident - incidents 테이블 한 행 + 담당자 요약
type Incident struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Category    *string   `json:"category"`
	AssignedTo  *string   `json:"assigned_to"`
	Resolution  *string   `json:"resolution"`
	Source      *string   `json:"source"`
	Client      *string   `json:"client"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// assigned_to 가 있을 때만 채워짐
	AssignedTeamMember *TeamMemberSummary `json:"assigned_team_member"`
}

// IncidentFilter - 목록 조회 필터 (빈 값은 조건에서 제외)
type IncidentFilter struct {
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	Category   string `form:"category"`
	AssignedTo string `form:"assigned_to"`
}

// CreateIncidentRequest - Incident 생성 요청
type CreateIncidentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,incident_status"`
	Priority    string  `json:"priority" validate:"omitempty,incident_priority"`
	Category    string  `json:"category" validate:"omitempty,incident_category"`
	AssignedTo  string  `json:"assigned_to" validate:"omitempty,uuid"`
	Resolution  *string `json:"resolution"`
	Source      *string `json:"source"`
	Client      *string `json:"client"`
}

// UpdateIncidentRequest - 부분 수정 요청 (nil 필드는 변경하지 않음)
type UpdateIncidentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,incident_status"`
	Priority    *string `json:"priority" validate:"omitempty,incident_priority"`
	Category    *string `json:"category" validate:"omitempty,incident_category"`
	AssignedTo  *string `json:"assigned_to" validate:"omitempty,uuid"`
	Resolution  *string `json:"resolution"`
	Source      *string `json:"source"`
	Client      *string `json:"client"`
}

// IsEmpty - 변경할 필드가 하나도 없는지
func (r UpdateIncidentRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil && r.Priority == nil &&
		r.Category == nil && r.AssignedTo == nil && r.Resolution == nil && r.Source == nil && r.Client == nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,incident_status"`
}

type UpdateCategoryRequest struct {
	Category string `json:"category" validate:"required,incident_category"`
}

// AssignIncidentRequest - assigned_to 가 null/빈 문자열이면 담당자 해제
type AssignIncidentRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// NewIncident - 생성 요청에 기본값을 채운 insert 용 값
type NewIncident struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Category    *string
	AssignedTo  *string
	Resolution  *string
	Source      *string
	Client      *string
}
