package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/model"
	"golang.org/x/sync/errgroup"
)

type incidentRepo interface {
	ListIncidents(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error)
	GetIncident(ctx context.Context, id string) (*model.Incident, error)
	CreateIncident(ctx context.Context, in model.NewIncident) (*model.Incident, error)
	UpdateIncident(ctx context.Context, id string, req model.UpdateIncidentRequest, clearAssignee bool) (*model.Incident, error)
	GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error)
}

// assignmentNotifier - 담당자 배정 알림 (실패해도 배정 결과에 영향 없음)
type assignmentNotifier interface {
	NotifyAssignment(ctx context.Context, member model.TeamMember, incident model.Incident)
}

type IncidentService struct {
	repo     incidentRepo
	notifier assignmentNotifier
	logger   *slog.Logger
}

func NewIncidentService(repo incidentRepo, notifier assignmentNotifier, logger *slog.Logger) *IncidentService {
	return &IncidentService{repo: repo, notifier: notifier, logger: logger}
}

func (s *IncidentService) List(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error) {
	if filter.Status != "" && !slices.Contains(model.IncidentStatuses, filter.Status) {
		return nil, invalid("status must be one of: " + strings.Join(model.IncidentStatuses, ", "))
	}
	if filter.Priority != "" && !slices.Contains(model.IncidentPriorities, filter.Priority) {
		return nil, invalid("priority must be one of: " + strings.Join(model.IncidentPriorities, ", "))
	}
	if filter.Category != "" && !slices.Contains(model.IncidentCategories, filter.Category) {
		return nil, invalid("category must be one of: " + strings.Join(model.IncidentCategories, ", "))
	}
	if filter.AssignedTo != "" && !isUUID(filter.AssignedTo) {
		return nil, invalid("assigned_to must be a valid UUID")
	}

	list, err := s.repo.ListIncidents(ctx, filter)
	if err != nil {
		return nil, upstream("failed to list incidents", err)
	}
	return list, nil
}

func (s *IncidentService) Get(ctx context.Context, id string) (*model.Incident, error) {
	if !isUUID(id) {
		return nil, notFound("incident not found")
	}
	incident, err := s.repo.GetIncident(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("incident not found")
		}
		return nil, upstream("failed to load incident", err)
	}
	return incident, nil
}

// Create - status/priority 미지정 시 Open/Medium
func (s *IncidentService) Create(ctx context.Context, req model.CreateIncidentRequest) (*model.Incident, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	in := model.NewIncident{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Resolution:  req.Resolution,
		Source:      req.Source,
		Client:      req.Client,
	}
	if in.Status == "" {
		in.Status = model.StatusOpen
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if req.Category != "" {
		in.Category = &req.Category
	}
	if req.AssignedTo != "" {
		if _, err := s.lookupAssignee(ctx, req.AssignedTo); err != nil {
			return nil, err
		}
		in.AssignedTo = &req.AssignedTo
	}

	incident, err := s.repo.CreateIncident(ctx, in)
	if err != nil {
		return nil, upstream("failed to create incident", err)
	}
	s.logger.Info("incident created", "incident_id", incident.ID, "priority", incident.Priority)
	return incident, nil
}

// Update - 전달된 필드만 변경. assigned_to 가 빈 문자열이면 담당자 해제
func (s *IncidentService) Update(ctx context.Context, id string, req model.UpdateIncidentRequest) (*model.Incident, error) {
	if !isUUID(id) {
		return nil, notFound("incident not found")
	}
	if req.IsEmpty() {
		return nil, invalid("no fields to update")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, invalid("title must not be empty")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, invalid("description must not be empty")
	}

	clearAssignee := false
	if req.AssignedTo != nil && *req.AssignedTo == "" {
		clearAssignee = true
		req.AssignedTo = nil
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.AssignedTo != nil {
		if _, err := s.lookupAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	return s.update(ctx, id, req, clearAssignee)
}

func (s *IncidentService) UpdateStatus(ctx context.Context, id string, req model.UpdateStatusRequest) (*model.Incident, error) {
	if !isUUID(id) {
		return nil, notFound("incident not found")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.update(ctx, id, model.UpdateIncidentRequest{Status: &req.Status}, false)
}

func (s *IncidentService) UpdateCategory(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Incident, error) {
	if !isUUID(id) {
		return nil, notFound("incident not found")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.update(ctx, id, model.UpdateIncidentRequest{Category: &req.Category}, false)
}

// Assign - 담당자 지정/해제
//
// 담당자와 Incident 를 동시에 조회하고, 담당자에게 chat id 가 있으면
// 알림을 비동기로 보낸다. 알림 실패는 응답에 영향을 주지 않는다.
func (s *IncidentService) Assign(ctx context.Context, id string, req model.AssignIncidentRequest) (*model.Incident, error) {
	if !isUUID(id) {
		return nil, notFound("incident not found")
	}

	// 1. 담당자 해제
	if req.AssignedTo == nil || *req.AssignedTo == "" {
		return s.update(ctx, id, model.UpdateIncidentRequest{}, true)
	}
	memberID := *req.AssignedTo

	// 2. 담당자/Incident 동시 조회
	var (
		member                 *model.TeamMember
		memberErr, incidentErr error
		g                      errgroup.Group
	)
	g.Go(func() error {
		member, memberErr = s.lookupAssignee(ctx, memberID)
		return memberErr
	})
	g.Go(func() error {
		_, incidentErr = s.Get(ctx, id)
		return incidentErr
	})
	_ = g.Wait()

	// 담당자 오류를 먼저 보고
	if memberErr != nil {
		return nil, memberErr
	}
	if incidentErr != nil {
		return nil, incidentErr
	}

	// 3. 배정
	updated, err := s.update(ctx, id, model.UpdateIncidentRequest{AssignedTo: &memberID}, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info("incident assigned", "incident_id", updated.ID, "team_member_id", member.ID)

	// 4. 알림 (fire-and-forget)
	if s.notifier != nil {
		go s.notifier.NotifyAssignment(context.WithoutCancel(ctx), *member, *updated)
	}
	return updated, nil
}

func (s *IncidentService) update(ctx context.Context, id string, req model.UpdateIncidentRequest, clearAssignee bool) (*model.Incident, error) {
	incident, err := s.repo.UpdateIncident(ctx, id, req, clearAssignee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("incident not found")
		}
		return nil, upstream("failed to update incident", err)
	}
	return incident, nil
}

// lookupAssignee - 존재하지 않는 담당자는 검증 오류
func (s *IncidentService) lookupAssignee(ctx context.Context, memberID string) (*model.TeamMember, error) {
	if !isUUID(memberID) {
		return nil, invalid("Invalid team member ID provided")
	}
	member, err := s.repo.GetTeamMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalid("Invalid team member ID provided")
		}
		return nil, upstream("failed to load team member", err)
	}
	return member, nil
}
