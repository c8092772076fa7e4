// Package template provides notification text rendering.
//
// 지원하는 변수 형식:
//
//	{{incident.id}}, {{incident.title}}, {{incident.description}},
//	{{incident.status}}, {{incident.priority}}, {{incident.category}},
//	{{incident.created_at}}
//
//	{{member.name}}, {{member.email}}
package template

import (
	"strings"
	"time"

	"github.com/kube-rca/incident-desk/internal/model"
)

// DefaultAssignmentTemplate - NOTIFY_TEMPLATE 미설정 시 사용
const DefaultAssignmentTemplate = "🚨 New Incident Assignment\n\n" +
	"Title: {{incident.title}}\n" +
	"Priority: {{incident.priority}}\n" +
	"Status: {{incident.status}}\n\n" +
	"You have been assigned to this incident."

// IncidentData - 템플릿 렌더링에 사용할 Incident 데이터
type IncidentData struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	CreatedAt   time.Time
}

// MemberData - 템플릿 렌더링에 사용할 담당자 데이터
type MemberData struct {
	Name  string
	Email string
}

// IncidentDataFromModel - model.Incident 에서 IncidentData 생성
// category 가 비어 있으면 Software 로 취급한다.
func IncidentDataFromModel(inc model.Incident) IncidentData {
	category := model.CategorySoftware
	if inc.Category != nil && *inc.Category != "" {
		category = *inc.Category
	}
	return IncidentData{
		ID:          inc.ID,
		Title:       inc.Title,
		Description: inc.Description,
		Status:      inc.Status,
		Priority:    inc.Priority,
		Category:    category,
		CreatedAt:   inc.CreatedAt,
	}
}

func MemberDataFromModel(m model.TeamMember) MemberData {
	email := ""
	if m.Email != nil {
		email = *m.Email
	}
	return MemberData{Name: m.FullName, Email: email}
}

// RenderAssignment - 템플릿의 변수를 실제 값으로 치환
//
// body 가 비어 있으면 DefaultAssignmentTemplate 을 사용합니다.
// nil로 전달된 항목의 변수는 빈 문자열로 치환됩니다.
func RenderAssignment(body string, incident *IncidentData, member *MemberData) string {
	if strings.TrimSpace(body) == "" {
		body = DefaultAssignmentTemplate
	}

	pairs := make([]string, 0, 18)

	// --- Incident 변수 ---
	if incident != nil {
		createdAt := ""
		if !incident.CreatedAt.IsZero() {
			createdAt = incident.CreatedAt.Format(time.RFC3339)
		}
		pairs = append(pairs,
			"{{incident.id}}", incident.ID,
			"{{incident.title}}", incident.Title,
			"{{incident.description}}", incident.Description,
			"{{incident.status}}", incident.Status,
			"{{incident.priority}}", incident.Priority,
			"{{incident.category}}", incident.Category,
			"{{incident.created_at}}", createdAt,
		)
	} else {
		pairs = append(pairs,
			"{{incident.id}}", "",
			"{{incident.title}}", "",
			"{{incident.description}}", "",
			"{{incident.status}}", "",
			"{{incident.priority}}", "",
			"{{incident.category}}", "",
			"{{incident.created_at}}", "",
		)
	}

	// --- Member 변수 ---
	if member != nil {
		pairs = append(pairs,
			"{{member.name}}", member.Name,
			"{{member.email}}", member.Email,
		)
	} else {
		pairs = append(pairs,
			"{{member.name}}", "",
			"{{member.email}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
