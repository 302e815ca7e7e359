package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/priyanshuchauhan04/academics-analytics/pkg/redis"
)

// SessionStore 会话存储，由 pkg/redis.Client 实现
// Get 在会话不存在时返回 redis.ErrNotFound
type SessionStore interface {
	Set(ctx context.Context, id string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

type sessionRecord struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionIssuer 服务端会话：客户端只持有随机会话 ID
type SessionIssuer struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionIssuer 创建 SessionIssuer，ttl 非正时使用 DefaultTTL
func NewSessionIssuer(store SessionStore, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionIssuer{store: store, ttl: ttl, now: time.Now}
}

// WithClock 替换时钟，测试用
func (i *SessionIssuer) WithClock(now func() time.Time) *SessionIssuer {
	i.now = now
	return i
}

func (i *SessionIssuer) Kind() string { return KindSession }

func (i *SessionIssuer) Issue(ctx context.Context, userID, role string) (*Assertion, error) {
	now := i.now()
	rec := sessionRecord{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := i.store.Set(ctx, id, b, i.ttl); err != nil {
		return nil, err
	}

	return &Assertion{
		Value:     id,
		Kind:      KindSession,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (i *SessionIssuer) Validate(ctx context.Context, raw string) (*Identity, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return nil, ErrMalformed
	}

	b, err := i.store.Get(ctx, raw)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrMalformed
		}
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(b, &rec); err != nil || rec.UserID == "" {
		return nil, ErrMalformed
	}
	if i.now().After(rec.ExpiresAt) {
		return nil, ErrExpired
	}

	return &Identity{UserID: rec.UserID, Role: rec.Role, ExpiresAt: rec.ExpiresAt}, nil
}

// Revoke 删除会话，立即生效
func (i *SessionIssuer) Revoke(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return i.store.Delete(ctx, raw)
}
