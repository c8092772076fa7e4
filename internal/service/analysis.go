package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/metrics"
	"github.com/kube-rca/incident-desk/internal/model"
)

const analysisSystemPrompt = "You are an IT incident response expert. Your task is to analyze IT incidents and provide clear, actionable insights. " +
	"Always format your response exactly as follows:\n\n" +
	"Possible Cause: [Your analysis of the likely cause]\n\n" +
	"Suggested Solution: [Your recommended solution]\n\n" +
	"Do not include any additional text or explanations outside these sections."

const analysisUserPromptFormat = "Incident Title: %s\n\nDescription: %s\n\n" +
	"Please analyze this incident and provide a possible cause and suggested solution."

type analysisRepo interface {
	GetIncident(ctx context.Context, id string) (*model.Incident, error)
	GetLatestAnalysis(ctx context.Context, incidentID string) (*model.AnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id string) error
	InsertAnalysis(ctx context.Context, record model.AnalysisRecord) (*model.AnalysisRecord, error)
}

// completer - client.Completer 와 같은 모양
type completer interface {
	IsConfigured() bool
	Provider() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// AnalysisService - Incident 원인 분석 + 결과 캐시
//
// 캐시는 Incident 당 최신 1건이 유효하며, 분석 당시 title/description 이
// 현재 값과 정확히 같을 때만 재사용한다.
type AnalysisService struct {
	repo      analysisRepo
	completer completer
	logger    *slog.Logger
	now       func() time.Time
}

func NewAnalysisService(repo analysisRepo, completer completer, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		repo:      repo,
		completer: completer,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze - 유효한 캐시가 있으면 그대로 반환, 없으면 새로 분석 후 저장
//
// 저장에 실패하면 결과(ID 없음)와 ErrAnalysisNotCached 를 함께 반환한다.
func (s *AnalysisService) Analyze(ctx context.Context, incidentID string) (*model.AnalysisRecord, error) {
	// 1. Incident 조회
	incident, err := s.loadIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	// 2. 최신 캐시 조회 (조회 실패는 캐시 miss 로 취급)
	cached, err := s.repo.GetLatestAnalysis(ctx, incident.ID)
	if err != nil {
		s.logger.Warn("failed to read cached analysis, recomputing", "incident_id", incident.ID, "error", err)
		cached = nil
	}

	// 3. 스냅샷이 같으면 캐시 반환
	if cached != nil && cached.Snapshot() == model.SnapshotOf(incident) {
		metrics.AnalysisRequests.WithLabelValues(metrics.AnalysisCacheHit).Inc()
		s.logger.Debug("analysis cache hit", "incident_id", incident.ID, "analysis_id", cached.ID)
		return cached, nil
	}

	// 4. 외부 호출 전에 설정 확인 (stale 캐시는 이 시점까지 보존)
	if !s.completer.IsConfigured() {
		metrics.AnalysisRequests.WithLabelValues(metrics.AnalysisUnavailable).Inc()
		return nil, misconfigured("completion API key is not configured")
	}

	// 5. stale 캐시 삭제
	if cached != nil {
		if err := s.repo.DeleteAnalysis(ctx, cached.ID); err != nil {
			s.logger.Warn("failed to delete stale analysis", "incident_id", incident.ID, "analysis_id", cached.ID, "error", err)
		}
	}

	// 6. 분석 요청 (재시도 없음)
	raw, err := s.complete(ctx, incident)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.AnalysisFailed).Inc()
		return nil, err
	}

	// 7. 응답 파싱 + 저장
	cause, solution := ParseAnalysis(raw)
	record := model.AnalysisRecord{
		IncidentID:        incident.ID,
		Title:             incident.Title,
		Description:       incident.Description,
		PossibleCause:     cause,
		SuggestedSolution: solution,
		CreatedAt:         s.now().UTC(),
	}

	saved, err := s.repo.InsertAnalysis(ctx, record)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.AnalysisNotCached).Inc()
		return &record, fmt.Errorf("%w: %v", ErrAnalysisNotCached, err)
	}

	metrics.AnalysisRequests.WithLabelValues(metrics.AnalysisComputed).Inc()
	s.logger.Info("incident analyzed", "incident_id", incident.ID, "analysis_id", saved.ID, "provider", s.completer.Provider())
	return saved, nil
}

func (s *AnalysisService) loadIncident(ctx context.Context, id string) (*model.Incident, error) {
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

func (s *AnalysisService) complete(ctx context.Context, incident *model.Incident) (string, error) {
	provider := s.completer.Provider()
	user := fmt.Sprintf(analysisUserPromptFormat, incident.Title, incident.Description)

	start := s.now()
	raw, err := s.completer.Complete(ctx, analysisSystemPrompt, user)
	elapsed := s.now().Sub(start).Seconds()

	if err != nil {
		metrics.CompletionDuration.WithLabelValues(provider, "error").Observe(elapsed)
		s.logger.Error("completion request failed", "incident_id", incident.ID, "provider", provider, "error", err)
		return "", upstream("failed to analyze incident", err)
	}
	metrics.CompletionDuration.WithLabelValues(provider, "ok").Observe(elapsed)
	return raw, nil
}
