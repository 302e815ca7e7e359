package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-unit-testing-2026"

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager(testSecret, 24*time.Hour)

	token, issued, err := m.Generate("user-1", "teacher")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Subject != "user-1" {
		t.Errorf("期望 sub=user-1，实际=%s", claims.Subject)
	}
	if claims.Role != "teacher" {
		t.Errorf("期望 Role=teacher，实际=%s", claims.Role)
	}
	if claims.Issuer != "academics-analytics" {
		t.Errorf("期望 Issuer=academics-analytics，实际=%s", claims.Issuer)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Error("JTI 应非空且与签发时一致")
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Errorf("期望 TTL=24h，实际=%v", ttl)
	}
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	m := NewManager(testSecret, time.Hour).WithClock(func() time.Time { return now })

	token, _, err := m.Generate("user-1", "student")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	m.WithClock(func() time.Time { return now.Add(time.Hour + time.Minute) })
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager(testSecret, time.Hour)
	m2 := NewManager("another-secret-key-entirely-different", time.Hour)

	token, _, _ := m1.Generate("user-1", "student")
	if _, err := m2.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Tampered(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	token, _, _ := m.Generate("user-1", "student")

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("JWT 应由三段组成")
	}
	// 将签名段替换为另一个 token 的签名
	other, _, _ := m.Generate("user-2", "teacher")
	parts[2] = strings.Split(other, ".")[2]
	tampered := strings.Join(parts, ".")

	if _, err := m.ParseToken(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	for _, s := range []string{"", "abc", "a.b.c"} {
		if _, err := m.ParseToken(s); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("输入 %q 期望 ErrTokenInvalid，实际: %v", s, err)
		}
	}
}
