package db

import (
	"context"

	"github.com/kube-rca/incident-desk/internal/model"
)

// ListIncidentStatusRows - 집계용 최소 컬럼만 조회
func (db *Postgres) ListIncidentStatusRows(ctx context.Context) ([]model.IncidentStatusRow, error) {
	rows, err := db.Pool.Query(ctx, `SELECT category, assigned_to, status, created_at FROM incidents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.IncidentStatusRow{}
	for rows.Next() {
		var r model.IncidentStatusRow
		if err := rows.Scan(&r.Category, &r.AssignedTo, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func (db *Postgres) ListIncidentResolutions(ctx context.Context) ([]model.IncidentResolution, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT resolved_at, resolution_time_minutes, resolution_type
		FROM incident_resolutions
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.IncidentResolution{}
	for rows.Next() {
		var r model.IncidentResolution
		if err := rows.Scan(&r.ResolvedAt, &r.ResolutionTimeMinutes, &r.ResolutionType); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func (db *Postgres) ListServiceHealth(ctx context.Context) ([]model.ServiceHealth, error) {
	rows, err := db.Pool.Query(ctx, `SELECT service_name, status FROM service_health ORDER BY service_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.ServiceHealth{}
	for rows.Next() {
		var s model.ServiceHealth
		if err := rows.Scan(&s.ServiceName, &s.Status); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
