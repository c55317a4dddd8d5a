package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

// DefaultKey is the state key used when no WithKey option is given.
const DefaultKey = "fleet:session:token"

// Decoder turns a token into its role set.
type Decoder func(token string) (domain.Roles, error)

// Session is the console's view of the current credential. Only the token is
// persisted; roles are derived from it on every read.
type Session struct {
	store  ports.StateStore
	key    string
	decode Decoder
	logger ports.LoggerPort
}

// Option configures a Session.
type Option func(*Session)

// WithKey stores the token under key. An empty key keeps DefaultKey.
func WithKey(key string) Option {
	return func(s *Session) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDecoder replaces DecodeRoles. A nil decoder is ignored.
func WithDecoder(decode Decoder) Option {
	return func(s *Session) {
		if decode != nil {
			s.decode = decode
		}
	}
}

// New returns a Session backed by store, reading the token under DefaultKey
// and decoding roles with DecodeRoles unless options say otherwise.
func New(store ports.StateStore, logger ports.LoggerPort, opts ...Option) *Session {
	s := &Session{
		store:  store,
		key:    DefaultKey,
		decode: DecodeRoles,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetSession(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("set session: %w", errEmptyToken)
	}
	if err := s.store.Set(ctx, s.key, token); err != nil {
		s.logger.Error("Failed to persist session token", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *Session) Token(ctx context.Context) (string, bool) {
	token, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrStateNotFound) {
			s.logger.Warn("Failed to read session token", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return "", false
	}
	return token, token != ""
}

// Roles never fails: a missing or undecodable token yields an empty set.
func (s *Session) Roles(ctx context.Context) domain.Roles {
	token, ok := s.Token(ctx)
	if !ok {
		return domain.NewRoles()
	}
	roles, err := s.decode(token)
	if err != nil {
		s.logger.Debug("Token roles could not be decoded", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.NewRoles()
	}
	if roles == nil {
		return domain.NewRoles()
	}
	return roles
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, ports.ErrStateNotFound) {
		s.logger.Error("Failed to clear session token", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}
