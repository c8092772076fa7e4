package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/kube-rca/incident-desk/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	week                   = 7 * 24 * time.Hour
	serviceOperational     = "Operational"
	resolutionTypeAI       = "AI"
	allServicesOperational = "All services operational"
)

type analyticsRepo interface {
	ListIncidentStatusRows(ctx context.Context) ([]model.IncidentStatusRow, error)
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	ListIncidentResolutions(ctx context.Context) ([]model.IncidentResolution, error)
	ListServiceHealth(ctx context.Context) ([]model.ServiceHealth, error)
}

type AnalyticsService struct {
	repo   analyticsRepo
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo analyticsRepo, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger, now: time.Now}
}

func (s *AnalyticsService) CategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	rows, err := s.repo.ListIncidentStatusRows(ctx)
	if err != nil {
		return nil, upstream("failed to load incidents", err)
	}
	return s.categoryStats(rows), nil
}

// categoryStats - category 가 없으면 Software 로 집계, 알 수 없는 category 는 제외
func (s *AnalyticsService) categoryStats(rows []model.IncidentStatusRow) []model.CategoryStats {
	stats := make([]model.CategoryStats, len(model.IncidentCategories))
	index := make(map[string]int, len(model.IncidentCategories))
	for i, c := range model.IncidentCategories {
		stats[i].Category = c
		index[c] = i
	}

	for _, row := range rows {
		category := model.CategorySoftware
		if row.Category != nil && *row.Category != "" {
			category = *row.Category
		}
		i, ok := index[category]
		if !ok {
			s.logger.Warn("incident with unknown category", "category", category)
			continue
		}

		stats[i].Total++
		switch row.Status {
		case model.StatusOpen:
			stats[i].Open++
		case model.StatusInProgress:
			stats[i].InProgress++
		case model.StatusClosed:
			stats[i].Closed++
		}
	}
	return stats
}

// TeamMemberStats - 담당자별 배정 건수와 Closed 건수 (이름순)
func (s *AnalyticsService) TeamMemberStats(ctx context.Context) ([]model.TeamMemberStats, error) {
	var (
		members []model.TeamMember
		rows    []model.IncidentStatusRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.repo.ListTeamMembers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListIncidentStatusRows(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream("failed to load team member analytics", err)
	}

	assigned := make(map[string]int)
	resolved := make(map[string]int)
	for _, row := range rows {
		if row.AssignedTo == nil {
			continue
		}
		assigned[*row.AssignedTo]++
		if row.Status == model.StatusClosed {
			resolved[*row.AssignedTo]++
		}
	}

	stats := make([]model.TeamMemberStats, 0, len(members))
	for _, m := range members {
		stats = append(stats, model.TeamMemberStats{
			ID:            m.ID,
			Name:          m.FullName,
			AssignedCount: assigned[m.ID],
			ResolvedCount: resolved[m.ID],
		})
	}
	return stats, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*model.DashboardAnalytics, error) {
	var (
		rows        []model.IncidentStatusRow
		resolutions []model.IncidentResolution
		services    []model.ServiceHealth
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListIncidentStatusRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resolutions, err = s.repo.ListIncidentResolutions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.repo.ListServiceHealth(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream("failed to load dashboard analytics", err)
	}

	dashboard := BuildDashboard(s.now(), rows, resolutions, services)
	return &dashboard, nil
}

// BuildDashboard - 최근 7일과 그 이전 7일을 비교한 대시보드 카드 계산
func BuildDashboard(now time.Time, rows []model.IncidentStatusRow, resolutions []model.IncidentResolution, services []model.ServiceHealth) model.DashboardAnalytics {
	weekAgo := now.Add(-week)
	twoWeeksAgo := now.Add(-2 * week)

	inCurrent := func(t time.Time) bool { return !t.Before(weekAgo) }
	inPrevious := func(t time.Time) bool { return !t.Before(twoWeeksAgo) && t.Before(weekAgo) }

	// 1. 현재 Open 인 Incident 의 생성 시점 기준
	var activeCur, activePrev int
	for _, row := range rows {
		if row.Status != model.StatusOpen {
			continue
		}
		switch {
		case inCurrent(row.CreatedAt):
			activeCur++
		case inPrevious(row.CreatedAt):
			activePrev++
		}
	}

	// 2. 해결 시간 평균 + AI 해결 건수
	var (
		curMinutes, prevMinutes int
		curCount, prevCount     int
		aiCur, aiPrev           int
	)
	for _, r := range resolutions {
		minutes := 0
		if r.ResolutionTimeMinutes != nil {
			minutes = *r.ResolutionTimeMinutes
		}
		isAI := r.ResolutionType != nil && *r.ResolutionType == resolutionTypeAI

		switch {
		case inCurrent(r.ResolvedAt):
			curMinutes += minutes
			curCount++
			if isAI {
				aiCur++
			}
		case inPrevious(r.ResolvedAt):
			prevMinutes += minutes
			prevCount++
			if isAI {
				aiPrev++
			}
		}
	}
	meanCur := meanMinutes(curMinutes, curCount)
	meanPrev := meanMinutes(prevMinutes, prevCount)

	// 3. 서비스 상태
	operational := 0
	issues := make([]string, 0)
	for _, svc := range services {
		if svc.Status == serviceOperational {
			operational++
			continue
		}
		issues = append(issues, fmt.Sprintf("%s (%s)", svc.ServiceName, svc.Status))
	}
	description := strings.Join(issues, ", ")
	if description == "" {
		description = allServicesOperational
	}

	return model.DashboardAnalytics{
		ActiveIncidents: model.CountChange{
			Count:            activeCur,
			ChangePercentage: changePercentage(activeCur, activePrev),
		},
		MeanTimeToResolve: model.TimeChange{
			Time:             formatMinutes(meanCur),
			ChangePercentage: changePercentage(meanCur, meanPrev),
		},
		ServiceHealth: model.ServiceHealthCard{
			Count:       fmt.Sprintf("%d/%d", operational, len(services)),
			Description: description,
		},
		AIResolutions: model.CountChange{
			Count:            aiCur,
			ChangePercentage: changePercentage(aiCur, aiPrev),
		},
	}
}

func meanMinutes(total, count int) int {
	if count == 0 {
		return 0
	}
	return roundHalfUp(float64(total) / float64(count))
}

// changePercentage - 소수점 첫째 자리까지, 이전 값이 0 이면 0
func changePercentage(cur, prev int) float64 {
	if prev == 0 {
		return 0
	}
	pct := float64(cur-prev) / float64(prev) * 100
	return math.Floor(pct*10+0.5) / 10
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
