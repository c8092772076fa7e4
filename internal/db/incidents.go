package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/model"
)

// incidents + 담당자 LEFT JOIN 공통 컬럼
// 테이블 alias 는 항상 i(incidents), m(team_members)
const incidentSelectColumns = `
	i.id, i.title, i.description, i.status, i.priority, i.category,
	i.assigned_to, i.resolution, i.source, i.client, i.created_at, i.updated_at,
	m.id, m.full_name, m.email, m.role, m.department`

func scanIncident(row pgx.Row) (*model.Incident, error) {
	var (
		i          model.Incident
		memberID   *string
		memberName *string
		summary    model.TeamMemberSummary
	)

	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Status,
		&i.Priority,
		&i.Category,
		&i.AssignedTo,
		&i.Resolution,
		&i.Source,
		&i.Client,
		&i.CreatedAt,
		&i.UpdatedAt,
		&memberID,
		&memberName,
		&summary.Email,
		&summary.Role,
		&summary.Department,
	)
	if err != nil {
		return nil, err
	}

	if memberID != nil {
		summary.ID = *memberID
		if memberName != nil {
			summary.FullName = *memberName
		}
		i.AssignedTeamMember = &summary
	}
	return &i, nil
}

func (db *Postgres) GetIncident(ctx context.Context, id string) (*model.Incident, error) {
	query := `
		SELECT ` + incidentSelectColumns + `
		FROM incidents i
		LEFT JOIN team_members m ON m.id = i.assigned_to
		WHERE i.id = $1
	`
	return scanIncident(db.Pool.QueryRow(ctx, query, id))
}

// ListIncidents - 필터 조건에 맞는 Incident 목록 (최신순)
func (db *Postgres) ListIncidents(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("i.status", filter.Status)
	add("i.priority", filter.Priority)
	add("i.category", filter.Category)
	add("i.assigned_to", filter.AssignedTo)

	query := `
		SELECT ` + incidentSelectColumns + `
		FROM incidents i
		LEFT JOIN team_members m ON m.id = i.assigned_to`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY i.created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Incident{}
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *incident)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateIncident - id 는 여기서 생성, created_at/updated_at 은 DB NOW()
func (db *Postgres) CreateIncident(ctx context.Context, in model.NewIncident) (*model.Incident, error) {
	query := `
		WITH i AS (
			INSERT INTO incidents (
				id, title, description, status, priority, category,
				assigned_to, resolution, source, client, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING *
		)
		SELECT ` + incidentSelectColumns + `
		FROM i
		LEFT JOIN team_members m ON m.id = i.assigned_to
	`

	return scanIncident(db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		in.Title,
		in.Description,
		in.Status,
		in.Priority,
		in.Category,
		in.AssignedTo,
		in.Resolution,
		in.Source,
		in.Client,
	))
}

// UpdateIncident - nil 이 아닌 필드만 변경, updated_at 은 항상 NOW()
// 대상이 없으면 pgx.ErrNoRows
//
// clearAssignee 가 true 면 assigned_to 를 NULL 로 만든다.
func (db *Postgres) UpdateIncident(ctx context.Context, id string, req model.UpdateIncidentRequest, clearAssignee bool) (*model.Incident, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set("title", req.Title)
	set("description", req.Description)
	set("status", req.Status)
	set("priority", req.Priority)
	set("category", req.Category)
	set("resolution", req.Resolution)
	set("source", req.Source)
	set("client", req.Client)
	if clearAssignee {
		sets = append(sets, "assigned_to = NULL")
	} else {
		set("assigned_to", req.AssignedTo)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`
		WITH i AS (
			UPDATE incidents
			SET %s
			WHERE id = $%d
			RETURNING *
		)
		SELECT `+incidentSelectColumns+`
		FROM i
		LEFT JOIN team_members m ON m.id = i.assigned_to
	`, strings.Join(sets, ", "), len(args))

	return scanIncident(db.Pool.QueryRow(ctx, query, args...))
}
