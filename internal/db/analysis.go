package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/kube-rca/incident-desk/internal/model"
)

// GetLatestAnalysis - incident_id 기준 최신 분석 1건 조회
// 분석 기록이 없으면 (nil, nil)
func (db *Postgres) GetLatestAnalysis(ctx context.Context, incidentID string) (*model.AnalysisRecord, error) {
	query := `
		SELECT id, incident_id, title, description, possible_cause, suggested_solution, created_at
		FROM incident_analysis
		WHERE incident_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var a model.AnalysisRecord
	err := db.Pool.QueryRow(ctx, query, incidentID).Scan(
		&a.ID,
		&a.IncidentID,
		&a.Title,
		&a.Description,
		&a.PossibleCause,
		&a.SuggestedSolution,
		&a.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// InsertAnalysis - 분석 결과 저장 (id 생성, created_at 은 전달값 사용)
func (db *Postgres) InsertAnalysis(ctx context.Context, record model.AnalysisRecord) (*model.AnalysisRecord, error) {
	query := `
		INSERT INTO incident_analysis (
			id, incident_id, title, description, possible_cause, suggested_solution, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, incident_id, title, description, possible_cause, suggested_solution, created_at
	`

	var a model.AnalysisRecord
	err := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		record.IncidentID,
		record.Title,
		record.Description,
		record.PossibleCause,
		record.SuggestedSolution,
		record.CreatedAt,
	).Scan(
		&a.ID,
		&a.IncidentID,
		&a.Title,
		&a.Description,
		&a.PossibleCause,
		&a.SuggestedSolution,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *Postgres) DeleteAnalysis(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM incident_analysis WHERE id = $1`, id)
	return err
}
