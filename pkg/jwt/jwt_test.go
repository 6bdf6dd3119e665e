package jwt

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	token, err := m.GenerateAccessToken(1, "zhangsan@example.com", "PATRON")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("UserID不正确: %d", claims.UserID)
	}
	if claims.Email != "zhangsan@example.com" {
		t.Errorf("Email不正确: %s", claims.Email)
	}
	if claims.Role != "PATRON" {
		t.Errorf("Role不正确: %s", claims.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	// 有效期为负,签出即过期
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(1, "zhangsan@example.com", "PATRON")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("过期Token应返回ErrTokenExpired, 实际: %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	m1 := NewManager("secret-a", time.Hour, time.Hour)
	m2 := NewManager("secret-b", time.Hour, time.Hour)

	token, err := m1.GenerateAccessToken(1, "zhangsan@example.com", "PATRON")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m2.ParseToken(token)
	if !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("密钥不匹配应返回ErrInvalidToken, 实际: %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	_, err := m.ParseToken("not.a.token")
	if !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("非法Token应返回ErrInvalidToken, 实际: %v", err)
	}
}
