package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/kube-rca/incident-desk/internal/model"
)

// TokenVerifier - 외부 인증 제공자(HS256 서명)가 발급한 access token 검증
//
// 이 서비스는 토큰을 발급하지 않는다. secret 이 비어 있으면 검증을 끈다.
type TokenVerifier struct {
	jwtSecret []byte
}

type providerClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{jwtSecret: []byte(cfg.JWTSecret)}
}

func (v *TokenVerifier) Enabled() bool {
	return len(v.jwtSecret) > 0
}

func (v *TokenVerifier) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	if !v.Enabled() {
		return nil, ErrUnauthorized
	}

	claims := &providerClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return v.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &Error{Kind: ErrUnauthorized, Message: "token expired"}
		}
		return nil, ErrUnauthorized
	}

	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
