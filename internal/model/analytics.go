package model

import "time"

// CategoryStats - 카테고리별 상태 집계
type CategoryStats struct {
	Category   string `json:"category"`
	Total      int    `json:"total"`
	Open       int    `json:"open"`
	InProgress int    `json:"inProgress"`
	Closed     int    `json:"closed"`
}

// TeamMemberStats - 담당자별 배정/해결 건수
type TeamMemberStats struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AssignedCount int    `json:"assignedCount"`
	ResolvedCount int    `json:"resolvedCount"`
}

// IncidentStatusRow - 집계용 최소 컬럼
type IncidentStatusRow struct {
	Category   *string
	AssignedTo *string
	Status     string
	CreatedAt  time.Time
}

type IncidentResolution struct {
	ResolvedAt            time.Time
	ResolutionTimeMinutes *int
	ResolutionType        *string
}

type ServiceHealth struct {
	ServiceName string
	Status      string
}

// ============================================================================
// Dashboard 응답
// ============================================================================

type DashboardAnalytics struct {
	ActiveIncidents   CountChange       `json:"activeIncidents"`
	MeanTimeToResolve TimeChange        `json:"meanTimeToResolve"`
	ServiceHealth     ServiceHealthCard `json:"serviceHealth"`
	AIResolutions     CountChange       `json:"aiResolutions"`
}

type CountChange struct {
	Count            int     `json:"count"`
	ChangePercentage float64 `json:"changePercentage"`
}

type TimeChange struct {
	Time             string  `json:"time"`
	ChangePercentage float64 `json:"changePercentage"`
}

type ServiceHealthCard struct {
	Count       string `json:"count"`
	Description string `json:"description"`
}
