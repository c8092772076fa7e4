package db

import "context"

// EnsureSchema - 로컬/개발 환경용 테이블 생성
// 운영 스키마는 호스팅 DB 쪽에서 관리하므로 IF NOT EXISTS 로만 만든다.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS team_members (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT,
			role TEXT,
			department TEXT,
			telegram_chat_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS incidents (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Open',
			priority TEXT NOT NULL DEFAULT 'Medium',
			category TEXT,
			assigned_to UUID REFERENCES team_members(id) ON DELETE SET NULL,
			resolution TEXT,
			source TEXT,
			client TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS incidents_created_at_idx ON incidents(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS incidents_status_idx ON incidents(status)`,
		`CREATE INDEX IF NOT EXISTS incidents_assigned_to_idx ON incidents(assigned_to)`,
		`
		CREATE TABLE IF NOT EXISTS incident_analysis (
			id UUID PRIMARY KEY,
			incident_id UUID NOT NULL REFERENCES incidents(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			possible_cause TEXT NOT NULL DEFAULT '',
			suggested_solution TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS incident_analysis_incident_id_idx ON incident_analysis(incident_id, created_at DESC)`,
		`
		CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			comment TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS incident_resolutions (
			id UUID PRIMARY KEY,
			incident_id UUID REFERENCES incidents(id) ON DELETE CASCADE,
			resolved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			resolution_time_minutes INTEGER,
			resolution_type TEXT
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS service_health (
			id UUID PRIMARY KEY,
			service_name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Operational',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
