// 외부 Slack API와 통신하는 클라이언트 정의
// 담당자 배정 알림을 운영 채널에도 남기기 위해 사용한다.
//
// 환경변수:
//   - SLACK_BOT_TOKEN: Slack Bot Token (xoxb-...)
//   - SLACK_CHANNEL_ID: Slack 채널 ID (C...)
//   - SLACK_API_URL: 기본값 https://slack.com/api

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/kube-rca/incident-desk/internal/model"
)

// SlackClient(메시지 메타데이터) 구조체 정의
type SlackClient struct {
	botToken   string
	channelID  string
	apiURL     string
	httpClient *http.Client
}

// SlackMessage(메시지 내용)) 구조체 정의
type SlackMessage struct {
	Channel     string            `json:"channel"`               // 메시지를 보낼 채널 ID
	Text        string            `json:"text,omitempty"`        // 메시지 본문
	Attachments []SlackAttachment `json:"attachments,omitempty"` // 색상, 필드
}

// SlackAttachment(메시지 포맷) 구조체 정의
type SlackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Footer string       `json:"footer,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
	Fields []SlackField `json:"fields,omitempty"`
}

// SlackField(메시지 포맷 필드) 구조체 정의
type SlackField struct {
	Title string `json:"title"` // 필드 제목 (예: "Priority")
	Value string `json:"value"` // 필드 값 (예: "High")
	Short bool   `json:"short"` // true면 좁은 너비 (한 줄에 2개)
}

// SlackResponse(메시지 응답) 구조체 정의
type SlackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TS    string `json:"ts,omitempty"`
}

func NewSlackClient(cfg config.SlackConfig) *SlackClient {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://slack.com/api"
	}
	return &SlackClient{
		botToken:  cfg.BotToken,
		channelID: cfg.ChannelID,
		apiURL:    strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SlackClient에 Bot Token과 Channel ID가 모두 설정되어 있는지 체크
func (c *SlackClient) IsConfigured() bool {
	return c.botToken != "" && c.channelID != ""
}

// SendAssignment - 담당자 배정 알림을 채널로 전송
func (c *SlackClient) SendAssignment(ctx context.Context, incident model.Incident, assignee string) error {
	if !c.IsConfigured() {
		return fmt.Errorf("slack bot token or channel ID not configured")
	}

	category := model.CategorySoftware
	if incident.Category != nil {
		category = *incident.Category
	}

	msg := SlackMessage{
		Channel: c.channelID,
		Text:    fmt.Sprintf("🚨 %s assigned to %s", incident.Title, assignee),
		Attachments: []SlackAttachment{
			{
				Color: colorByPriority(incident.Priority),
				Title: incident.Title,
				Text:  toSlackMarkdown(incident.Description),
				Fields: []SlackField{
					{Title: "Priority", Value: incident.Priority, Short: true},
					{Title: "Status", Value: incident.Status, Short: true},
					{Title: "Category", Value: category, Short: true},
					{Title: "Assignee", Value: assignee, Short: true},
				},
				Footer: "incident " + incident.ID,
				Ts:     incident.UpdatedAt.Unix(),
			},
		},
	}

	_, err := c.send(ctx, msg)
	return err
}

// Slack API 호출
func (c *SlackClient) send(ctx context.Context, msg SlackMessage) (*SlackResponse, error) {
	// JSON 직렬화
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	// HTTP 요청 생성
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat.postMessage", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// 헤더 설정
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	// 요청 전송
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	// 응답 읽기
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// JSON 파싱
	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// 에러 확인
	if !slackResp.OK {
		return nil, fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return &slackResp, nil
}

func colorByPriority(priority string) string {
	switch priority {
	case model.PriorityCritical:
		return "#dc3545"
	case model.PriorityHigh:
		return "#fd7e14"
	case model.PriorityMedium:
		return "#ffc107"
	default:
		return "#36a64f"
	}
}

var (
	slackHeadingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)
	slackBoldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// toSlackMarkdown - Markdown 굵게/제목을 Slack mrkdwn 으로 변환 (코드 구간 제외)
func toSlackMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCodeBlock := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		if m := slackHeadingPattern.FindStringSubmatch(line); m != nil {
			lines[i] = "*" + m[1] + "*"
			continue
		}

		// 짝수 인덱스만 inline code 바깥
		parts := strings.Split(line, "`")
		for j := 0; j < len(parts); j += 2 {
			parts[j] = slackBoldPattern.ReplaceAllString(parts[j], "*$1*")
		}
		lines[i] = strings.Join(parts, "`")
	}
	return strings.Join(lines, "\n")
}
