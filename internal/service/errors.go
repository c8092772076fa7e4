package service

import (
	"errors"
	"fmt"
)

// 서비스 계층 에러 분류. handler 에서 HTTP 상태 코드로 한 번만 매핑한다.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream error")
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrAnalysisNotCached - 분석 결과는 만들었지만 캐시에 저장하지 못함
	// 이 에러와 함께 반환된 결과는 그대로 응답해도 된다.
	ErrAnalysisNotCached = errors.New("analysis result was not cached")
)

// Error - 분류(Kind) + 사용자용 메시지 + 원인 에러
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail - 원인 에러 메시지 (없으면 빈 문자열)
func (e *Error) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func notFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func invalid(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func upstream(message string, err error) error {
	return &Error{Kind: ErrUpstream, Message: message, Err: err}
}

func misconfigured(message string) error {
	return &Error{Kind: ErrConfiguration, Message: message}
}
