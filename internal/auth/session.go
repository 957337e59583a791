package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no valid session")

// Session is the server-side state behind a session token.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore persists sessions. Get returns ErrNoSession for unknown or
// expired sessions.
type SessionStore interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session failed: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}

// SessionManager resolves session tokens to principals.
type SessionManager struct {
	store  SessionStore
	tokens *JWTManager
	ttl    time.Duration
}

func NewSessionManager(store SessionStore, tokens *JWTManager, ttl time.Duration) *SessionManager {
	return &SessionManager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
	}
}

// TTL is the lifetime of new sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for p and returns its signed token.
func (m *SessionManager) Create(ctx context.Context, p Principal) (string, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Principal: p,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", err
	}

	token, err := m.tokens.GenerateSessionToken(sess.ID, p.ID)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return "", err
	}
	return token, nil
}

// Resolve returns the principal behind token. Invalid, expired or logged-out
// tokens yield ErrNoSession; store failures are returned as-is.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims, err := m.tokens.ParseAndValidate(token)
	if err != nil {
		return nil, ErrNoSession
	}

	sess, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Principal.ID != claims.UserID {
		return nil, ErrNoSession
	}

	p := sess.Principal
	return &p, nil
}

// Destroy ends the session behind token. Unknown tokens are ignored.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := m.tokens.ParseAndValidate(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}
