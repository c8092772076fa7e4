package model

// AuthUser - 외부 인증 제공자 access token 에서 꺼낸 사용자 정보
type AuthUser struct {
	ID    string
	Email string
	Role  string
}
