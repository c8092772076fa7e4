package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedReply = "Possible Cause: Disk full\n\nSuggested Solution: Rotate logs"

func newAnalysisFixture(t *testing.T) (*AnalysisService, *fakeStore, *fakeCompleter) {
	t.Helper()
	store := newFakeStore()
	completer := &fakeCompleter{configured: true, reply: wellFormedReply}
	svc := NewAnalysisService(store, completer, discardLogger())

	// 생성 순서가 보장되도록 호출마다 1초씩 증가
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, store, completer
}

func TestAnalyzeComputesAndCaches(t *testing.T) {
	svc, store, completer := newAnalysisFixture(t)
	inc := store.addIncident("Mail down", "SMTP timeouts since 09:00")
	ctx := context.Background()

	first, err := svc.Analyze(ctx, inc.ID)
	require.NoError(t, err)
	assert.True(t, first.Saved())
	assert.Equal(t, "Disk full", first.PossibleCause)
	assert.Equal(t, "Rotate logs", first.SuggestedSolution)
	assert.Equal(t, inc.Title, first.Title)
	assert.Equal(t, inc.Description, first.Description)
	assert.Equal(t, 1, completer.callCount())

	assert.Contains(t, completer.lastUser, "Incident Title: Mail down")
	assert.Contains(t, completer.lastUser, "Description: SMTP timeouts since 09:00")
	assert.Contains(t, completer.lastSystem, "Possible Cause:")

	second, err := svc.Analyze(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, completer.callCount())
	assert.Equal(t, 1, store.analysisCount(inc.ID))
}

func TestAnalyzeRecomputesWhenIncidentChanged(t *testing.T) {
	svc, store, completer := newAnalysisFixture(t)
	inc := store.addIncident("Mail down", "SMTP timeouts")
	ctx := context.Background()

	first, err := svc.Analyze(ctx, inc.ID)
	require.NoError(t, err)

	store.setTitle(inc.ID, "Mail down (EU only)")
	completer.reply = "Possible Cause: Regional relay\n\nSuggested Solution: Fail over"

	second, err := svc.Analyze(ctx, inc.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Mail down (EU only)", second.Title)
	assert.Equal(t, "Regional relay", second.PossibleCause)
	assert.Equal(t, 2, completer.callCount())
	assert.Equal(t, []string{first.ID}, store.deleted)
	assert.Equal(t, 1, store.analysisCount(inc.ID))
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	t.Run("no-cache", func(t *testing.T) {
		svc, store, completer := newAnalysisFixture(t)
		completer.configured = false
		inc := store.addIncident("t", "d")

		_, err := svc.Analyze(context.Background(), inc.ID)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Zero(t, completer.callCount())
	})

	t.Run("fresh-cache-still-served", func(t *testing.T) {
		svc, store, completer := newAnalysisFixture(t)
		inc := store.addIncident("t", "d")
		first, err := svc.Analyze(context.Background(), inc.ID)
		require.NoError(t, err)

		completer.configured = false
		got, err := svc.Analyze(context.Background(), inc.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("stale-cache-kept", func(t *testing.T) {
		svc, store, completer := newAnalysisFixture(t)
		inc := store.addIncident("t", "d")
		_, err := svc.Analyze(context.Background(), inc.ID)
		require.NoError(t, err)

		completer.configured = false
		store.setTitle(inc.ID, "t2")
		_, err = svc.Analyze(context.Background(), inc.ID)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Empty(t, store.deleted)
		assert.Equal(t, 1, store.analysisCount(inc.ID))
	})
}

func TestAnalyzeCompletionFailure(t *testing.T) {
	svc, store, completer := newAnalysisFixture(t)
	completer.err = errors.New("503 from provider")
	inc := store.addIncident("t", "d")

	_, err := svc.Analyze(context.Background(), inc.ID)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 1, completer.callCount())
	assert.Zero(t, store.analysisCount(inc.ID))

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Detail(), "503 from provider")
}

func TestAnalyzeCacheWriteFailureStillReturnsResult(t *testing.T) {
	svc, store, _ := newAnalysisFixture(t)
	store.insertErr = errors.New("connection reset")
	inc := store.addIncident("t", "d")

	record, err := svc.Analyze(context.Background(), inc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnalysisNotCached)
	require.NotNil(t, record)
	assert.False(t, record.Saved())
	assert.Equal(t, "Disk full", record.PossibleCause)
	assert.Equal(t, "Rotate logs", record.SuggestedSolution)
}

func TestAnalyzeCacheReadFailureRecomputes(t *testing.T) {
	svc, store, completer := newAnalysisFixture(t)
	inc := store.addIncident("t", "d")
	store.getLatestErr = errors.New("timeout")

	record, err := svc.Analyze(context.Background(), inc.ID)
	require.NoError(t, err)
	assert.True(t, record.Saved())
	assert.Equal(t, 1, completer.callCount())
}

func TestAnalyzeUnknownIncident(t *testing.T) {
	svc, _, completer := newAnalysisFixture(t)

	_, err := svc.Analyze(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Analyze(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, completer.callCount())
}

func TestAnalyzeUnparseableReplyUsesPlaceholders(t *testing.T) {
	svc, store, completer := newAnalysisFixture(t)
	completer.reply = "no idea"
	inc := store.addIncident("t", "d")

	record, err := svc.Analyze(context.Background(), inc.ID)
	require.NoError(t, err)
	assert.Equal(t, causePlaceholder, record.PossibleCause)
	assert.Equal(t, solutionPlaceholder, record.SuggestedSolution)
}

func TestSnapshotComparisonIsExact(t *testing.T) {
	inc := &model.Incident{Title: "Mail down", Description: "x"}
	rec := &model.AnalysisRecord{Title: "Mail down ", Description: "x"}
	assert.NotEqual(t, model.SnapshotOf(inc), rec.Snapshot())
}
