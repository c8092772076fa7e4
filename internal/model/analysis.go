package model

import "time"

// AnalysisRecord - incident_analysis 테이블 한 행
//
// Title/Description 은 분석 당시 Incident 의 스냅샷이며,
// 현재 Incident 값과 비교해서 캐시 유효성을 판단한다.
// 저장에 실패한 결과는 ID 가 비어 있다.
type AnalysisRecord struct {
	ID                string    `json:"id,omitempty"`
	IncidentID        string    `json:"incident_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	PossibleCause     string    `json:"possible_cause"`
	SuggestedSolution string    `json:"suggested_solution"`
	CreatedAt         time.Time `json:"created_at"`
}

// AnalysisSnapshot - 캐시 유효성 비교 대상
type AnalysisSnapshot struct {
	Title       string
	Description string
}

func SnapshotOf(incident *Incident) AnalysisSnapshot {
	return AnalysisSnapshot{Title: incident.Title, Description: incident.Description}
}

func (a *AnalysisRecord) Snapshot() AnalysisSnapshot {
	return AnalysisSnapshot{Title: a.Title, Description: a.Description}
}

// Saved - DB 에 저장된 레코드인지
func (a *AnalysisRecord) Saved() bool {
	return a.ID != ""
}
