package service

import (
	"context"
	"log/slog"

	"github.com/kube-rca/incident-desk/internal/metrics"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/kube-rca/incident-desk/internal/template"
)

type telegramSender interface {
	IsConfigured() bool
	SendMessage(ctx context.Context, chatID, text string) error
}

type slackSender interface {
	IsConfigured() bool
	SendAssignment(ctx context.Context, incident model.Incident, assignee string) error
}

// NotificationService - 담당자 배정 알림 (Telegram 개인 메시지 + Slack 채널)
// 모든 실패는 로그만 남긴다.
type NotificationService struct {
	telegram telegramSender
	slack    slackSender
	template string
	logger   *slog.Logger
}

func NewNotificationService(telegram telegramSender, slack slackSender, tmpl string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		telegram: telegram,
		slack:    slack,
		template: tmpl,
		logger:   logger,
	}
}

func (s *NotificationService) NotifyAssignment(ctx context.Context, member model.TeamMember, incident model.Incident) {
	if chatID := member.ContactChatID(); chatID != "" && s.telegram != nil && s.telegram.IsConfigured() {
		incidentData := template.IncidentDataFromModel(incident)
		memberData := template.MemberDataFromModel(member)
		text := template.RenderAssignment(s.template, &incidentData, &memberData)

		if err := s.telegram.SendMessage(ctx, chatID, text); err != nil {
			metrics.Notifications.WithLabelValues("telegram", "error").Inc()
			s.logger.Error("failed to send telegram notification", "incident_id", incident.ID, "team_member_id", member.ID, "error", err)
		} else {
			metrics.Notifications.WithLabelValues("telegram", "ok").Inc()
		}
	}

	if s.slack != nil && s.slack.IsConfigured() {
		if err := s.slack.SendAssignment(ctx, incident, member.FullName); err != nil {
			metrics.Notifications.WithLabelValues("slack", "error").Inc()
			s.logger.Error("failed to send slack notification", "incident_id", incident.ID, "error", err)
		} else {
			metrics.Notifications.WithLabelValues("slack", "ok").Inc()
		}
	}
}
