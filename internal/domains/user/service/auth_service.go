package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/password"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"
)

const tokenType = "Bearer"

// LockoutPolicy bounds consecutive failed logins. Failures are counted within
// Duration; reaching MaxAttempts locks the login for Duration.
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

type authService struct {
	repo    repository.RepositoryInterface
	encoder password.Encoder
	cache   cache.Cache
	tokens  *jwt.Manager
	lockout LockoutPolicy
}

func NewAuthService(
	repo repository.RepositoryInterface,
	encoder password.Encoder,
	c cache.Cache,
	tokens *jwt.Manager,
	lockout LockoutPolicy,
) ServiceInterface {
	return &authService{
		repo:    repo,
		encoder: encoder,
		cache:   c,
		tokens:  tokens,
		lockout: lockout,
	}
}

func attemptKey(login string) string { return fmt.Sprintf("failed_login:%s", login) }
func lockKey(login string) string    { return fmt.Sprintf("account_locked:%s", login) }

func (s *authService) Authenticate(ctx context.Context, login, raw string) (*shared.Principal, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, model.ErrInvalidCredentials
	}

	// 1. CHECK LOCK
	locked, err := s.cache.Exists(ctx, lockKey(login))
	if err != nil {
		return nil, fmt.Errorf("check lock status: %w", err)
	}
	if locked {
		event := log.Warn().Str("login", login)
		if ttl, err := s.cache.TTL(ctx, lockKey(login)); err == nil && ttl > 0 {
			event = event.Dur("retry_in", ttl)
		}
		event.Msg("Login attempt on locked account")
		return nil, model.ErrAccountLocked
	}

	// 2. FIND USER
	// Unknown logins and wrong passwords fail the same way.
	u, err := s.repo.FindByLogin(ctx, login)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, s.registerFailure(ctx, login)
	}
	if err != nil {
		return nil, err
	}

	// 3. VERIFY PASSWORD
	if !s.encoder.Matches(raw, u.Password) {
		return nil, s.registerFailure(ctx, login)
	}

	if err := s.cache.Delete(ctx, attemptKey(login)); err != nil {
		log.Warn().Err(err).Str("login", login).Msg("Failed to reset login attempts")
	}
	if scheme, _ := password.Scheme(u.Password); scheme == password.SchemeNoop {
		log.Warn().Str("login", login).Msg("Password stored without hashing")
	}
	return u.Principal(), nil
}

// registerFailure counts a failed attempt and locks the login once the limit is
// reached. It returns the error to report to the caller.
func (s *authService) registerFailure(ctx context.Context, login string) error {
	key := attemptKey(login)

	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("login", login).Msg("Failed to count login attempt")
		return model.ErrInvalidCredentials
	}
	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, s.lockout.Duration); err != nil {
			log.Error().Err(err).Str("login", login).Msg("Failed to set attempt window")
		}
	}

	log.Warn().
		Str("login", login).
		Int64("attempts", attempts).
		Msg("Failed login attempt")

	if attempts < int64(s.lockout.MaxAttempts) {
		return model.ErrInvalidCredentials
	}

	if err := s.cache.Set(ctx, lockKey(login), "1", s.lockout.Duration); err != nil {
		log.Error().Err(err).Str("login", login).Msg("Failed to lock account")
		return model.ErrInvalidCredentials
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("login", login).Msg("Failed to reset login attempts")
	}

	log.Warn().
		Str("login", login).
		Dur("lockout", s.lockout.Duration).
		Msg("Account locked")
	return model.ErrAccountLocked
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	principal, err := s.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(principal.UserID, principal.Login, principal.Roles)
	if err != nil {
		log.Error().Err(err).Str("login", principal.Login).Msg("Token generation failed")
		return nil, err
	}

	log.Info().Int64("user_id", principal.UserID).Msg("User logged in")
	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) ParseToken(token string) (*shared.Principal, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	return &shared.Principal{
		UserID: claims.UserID,
		Login:  claims.Login,
		Roles:  claims.Roles,
	}, nil
}

func (s *authService) EnsureUser(ctx context.Context, login, raw string, roles ...string) (*model.User, error) {
	encoded, err := s.encoder.Encode(raw)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Upsert(ctx, model.User{
		Login:    login,
		Password: encoded,
		Roles:    model.JoinRoles(roles...),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("login", login).
		Strs("roles", roles).
		Msg("User ensured")
	return u, nil
}
