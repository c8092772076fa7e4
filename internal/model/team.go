package model

import "time"

// TeamMember - team_members 테이블 (이 서비스에서는 읽기 전용)
type TeamMember struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          *string   `json:"email"`
	Role           *string   `json:"role"`
	Department     *string   `json:"department"`
	TelegramChatID *string   `json:"telegram_chat_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TeamMemberSummary - Incident 응답에 포함되는 담당자 정보
type TeamMemberSummary struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
}

// ContactChatID - 알림 전송 대상 chat id (없으면 빈 문자열)
func (m *TeamMember) ContactChatID() string {
	if m.TelegramChatID == nil {
		return ""
	}
	return *m.TelegramChatID
}

// Comment - comments 테이블
type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Name    string `json:"name" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}
