package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/model"
)

const teamMemberColumns = `id, full_name, email, role, department, telegram_chat_id, created_at`

func scanTeamMember(row pgx.Row) (*model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(
		&m.ID,
		&m.FullName,
		&m.Email,
		&m.Role,
		&m.Department,
		&m.TelegramChatID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (db *Postgres) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+teamMemberColumns+` FROM team_members ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (db *Postgres) GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error) {
	return scanTeamMember(db.Pool.QueryRow(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = $1`, id))
}

// ============================================================================
// comments
// ============================================================================

func (db *Postgres) ListComments(ctx context.Context) ([]model.Comment, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, comment, created_at
		FROM comments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (db *Postgres) CreateComment(ctx context.Context, name, comment string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (id, name, comment, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, comment, created_at
	`
	var c model.Comment
	err := db.Pool.QueryRow(ctx, query, uuid.NewString(), name, comment).Scan(&c.ID, &c.Name, &c.Comment, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
