package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPostgres(ctx context.Context, t *testing.T) *Postgres {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := postgrescontainer.Run(ctx,
		"postgres:16-alpine",
		postgrescontainer.WithDatabase("incidents"),
		postgrescontainer.WithUsername("desk"),
		postgrescontainer.WithPassword("desk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(120*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := New(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	// 두 번 실행해도 실패하지 않아야 함
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func insertMember(ctx context.Context, t *testing.T, repo *Postgres, name string, chatID *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := repo.Pool.Exec(ctx,
		`INSERT INTO team_members (id, full_name, email, telegram_chat_id) VALUES ($1, $2, $3, $4)`,
		id, name, name+"@example.com", chatID)
	require.NoError(t, err)
	return id
}

func TestPostgresIntegration(t *testing.T) {
	ctx := context.Background()
	repo := setupPostgres(ctx, t)

	chatID := "4242"
	janeID := insertMember(ctx, t, repo, "Jane", &chatID)
	insertMember(ctx, t, repo, "Bob", nil)

	t.Run("team members", func(t *testing.T) {
		members, err := repo.ListTeamMembers(ctx)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Bob", members[0].FullName)

		jane, err := repo.GetTeamMember(ctx, janeID)
		require.NoError(t, err)
		require.NotNil(t, jane.TelegramChatID)
		assert.Equal(t, "4242", *jane.TelegramChatID)

		_, err = repo.GetTeamMember(ctx, uuid.NewString())
		assert.True(t, IsNoRows(err))
	})

	var incidentID string
	t.Run("incident lifecycle", func(t *testing.T) {
		category := model.CategoryHardware
		created, err := repo.CreateIncident(ctx, model.NewIncident{
			Title:       "Printer offline",
			Description: "Floor 3 printer does not respond",
			Status:      model.StatusOpen,
			Priority:    model.PriorityHigh,
			Category:    &category,
			AssignedTo:  &janeID,
		})
		require.NoError(t, err)
		incidentID = created.ID
		require.NotNil(t, created.AssignedTeamMember)
		assert.Equal(t, "Jane", created.AssignedTeamMember.FullName)

		status := model.StatusInProgress
		updated, err := repo.UpdateIncident(ctx, incidentID, model.UpdateIncidentRequest{Status: &status}, false)
		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, updated.Status)
		assert.Equal(t, "Printer offline", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		cleared, err := repo.UpdateIncident(ctx, incidentID, model.UpdateIncidentRequest{}, true)
		require.NoError(t, err)
		assert.Nil(t, cleared.AssignedTo)
		assert.Nil(t, cleared.AssignedTeamMember)

		list, err := repo.ListIncidents(ctx, model.IncidentFilter{Status: model.StatusInProgress})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, incidentID, list[0].ID)

		list, err = repo.ListIncidents(ctx, model.IncidentFilter{Status: model.StatusClosed})
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = repo.UpdateIncident(ctx, uuid.NewString(), model.UpdateIncidentRequest{Status: &status}, false)
		assert.True(t, IsNoRows(err))
	})

	t.Run("analysis cache", func(t *testing.T) {
		got, err := repo.GetLatestAnalysis(ctx, incidentID)
		require.NoError(t, err)
		assert.Nil(t, got)

		base := time.Now().UTC().Truncate(time.Millisecond)
		first, err := repo.InsertAnalysis(ctx, model.AnalysisRecord{
			IncidentID: incidentID, Title: "Printer offline", Description: "old",
			PossibleCause: "cable", SuggestedSolution: "replug", CreatedAt: base,
		})
		require.NoError(t, err)
		second, err := repo.InsertAnalysis(ctx, model.AnalysisRecord{
			IncidentID: incidentID, Title: "Printer offline", Description: "new",
			PossibleCause: "driver", SuggestedSolution: "reinstall", CreatedAt: base.Add(time.Second),
		})
		require.NoError(t, err)

		latest, err := repo.GetLatestAnalysis(ctx, incidentID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)

		require.NoError(t, repo.DeleteAnalysis(ctx, second.ID))
		latest, err = repo.GetLatestAnalysis(ctx, incidentID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, latest.ID)
	})

	t.Run("comments", func(t *testing.T) {
		c, err := repo.CreateComment(ctx, "Jane", "Looks good")
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)

		list, err := repo.ListComments(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Looks good", list[0].Comment)
	})

	t.Run("analytics sources", func(t *testing.T) {
		_, err := repo.Pool.Exec(ctx,
			`INSERT INTO incident_resolutions (id, incident_id, resolution_time_minutes, resolution_type) VALUES ($1, $2, 30, 'AI')`,
			uuid.NewString(), incidentID)
		require.NoError(t, err)
		_, err = repo.Pool.Exec(ctx,
			`INSERT INTO service_health (id, service_name, status) VALUES ($1, 'VPN', 'Degraded')`,
			uuid.NewString())
		require.NoError(t, err)

		rows, err := repo.ListIncidentStatusRows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].Category)
		assert.Equal(t, model.CategoryHardware, *rows[0].Category)

		resolutions, err := repo.ListIncidentResolutions(ctx)
		require.NoError(t, err)
		require.Len(t, resolutions, 1)
		require.NotNil(t, resolutions[0].ResolutionTimeMinutes)
		assert.Equal(t, 30, *resolutions[0].ResolutionTimeMinutes)

		services, err := repo.ListServiceHealth(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.ServiceHealth{{ServiceName: "VPN", Status: "Degraded"}}, services)
	})
}
