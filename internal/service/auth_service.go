package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibeshot/gallery-admin/config"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid session token")
)

// SessionTTL 管理员会话有效期
const SessionTTL = 7 * 24 * time.Hour

// AuthService 管理员登录与会话签发
type AuthService struct {
	password  string
	jwtSecret []byte
}

func NewAuthService(cfg config.AdminConfig) *AuthService {
	return &AuthService{
		password:  cfg.Password,
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// Login 校验口令并签发 7 天期 JWT。
// 配置为 bcrypt 哈希（$2 开头）时按哈希比对，否则按常数时间明文比对
func (s *AuthService) Login(password string) (string, error) {
	if s.password == "" {
		return "", ErrInvalidPassword
	}
	if strings.HasPrefix(s.password, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)); err != nil {
			return "", ErrInvalidPassword
		}
	} else if subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) != 1 {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	})
	return token.SignedString(s.jwtSecret)
}

// Verify 校验会话 JWT
func (s *AuthService) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.jwtSecret, nil
		})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
