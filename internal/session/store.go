// Package session implements the server-side session store. Each session is a
// Redis record keyed by an opaque token, holding a snapshot of the user taken
// at login time and an idle-expiry clock refreshed on every valid request.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recurate/internal/models"
	"recurate/internal/observability"

	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "recurate_session"

const keyPrefix = "sess:"

// Session binds an opaque token to an authenticated identity. UserID, FullName
// and IsAdmin are a denormalized snapshot of the user at login time; they can
// go stale if the user row changes out-of-band, which is accepted.
type Session struct {
	Token        string    `json:"-"`
	UserID       uint      `json:"user_id"`
	FullName     string    `json:"full_name"`
	IsAdmin      bool      `json:"is_admin"`
	LastActivity time.Time `json:"last_activity"`
}

// Store keeps session records in Redis with a TTL equal to the idle timeout.
type Store struct {
	rdb         *redis.Client
	secret      []byte
	idleTimeout time.Duration
}

// NewStore returns a session store bound to the given Redis client. The secret
// signs cookie values so a stolen record key cannot be forged client-side.
func NewStore(rdb *redis.Client, secret string, idleTimeout time.Duration) *Store {
	return &Store{
		rdb:         rdb,
		secret:      []byte(secret),
		idleTimeout: idleTimeout,
	}
}

// IdleTimeout returns the configured idle expiry window.
func (s *Store) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// Create generates an unguessable token and persists a session snapshotting
// the user's identity and role.
func (s *Store) Create(ctx context.Context, user *models.User) (*Session, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("generate session token: %w", err))
	}

	sess := &Session{
		Token:        hex.EncodeToString(raw),
		UserID:       user.ID,
		FullName:     user.FullName,
		IsAdmin:      user.IsAdmin,
		LastActivity: time.Now().UTC(),
	}

	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	observability.SessionsActive.Inc()
	return sess, nil
}

// Get loads the session for token. An absent record, or one whose idle window
// has elapsed, yields (nil, nil); expired records are destroyed on detection.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("load session: %w", err))
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// A corrupt record is unusable; drop it and treat the session as absent.
		_ = s.Destroy(ctx, token)
		return nil, nil
	}
	sess.Token = token

	if time.Since(sess.LastActivity) > s.idleTimeout {
		_ = s.Destroy(ctx, token)
		return nil, nil
	}
	return &sess, nil
}

// Touch refreshes the session's idle clock and its Redis TTL. Called once per
// authenticated request, before the request is dispatched.
func (s *Store) Touch(ctx context.Context, sess *Session) error {
	sess.LastActivity = time.Now().UTC()
	return s.write(ctx, sess)
}

// Destroy removes the session record. Destroying an absent session is not an
// error, so logout is idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	removed, err := s.rdb.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return models.NewInternalError(fmt.Errorf("destroy session: %w", err))
	}
	if removed > 0 {
		observability.SessionsActive.Dec()
	}
	return nil
}

func (s *Store) write(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("encode session: %w", err))
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.Token, payload, s.idleTimeout).Err(); err != nil {
		return models.NewInternalError(fmt.Errorf("store session: %w", err))
	}
	return nil
}

// Sign returns the cookie value for a token: token + "." + hex(HMAC-SHA256).
func (s *Store) Sign(token string) string {
	return token + "." + s.mac(token)
}

// Verify checks a cookie value's signature and returns the embedded token.
// Tampered or malformed values report ok=false and are treated as absent.
func (s *Store) Verify(signed string) (string, bool) {
	token, sig, found := strings.Cut(signed, ".")
	if !found || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(token))) {
		return "", false
	}
	return token, true
}

func (s *Store) mac(token string) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
