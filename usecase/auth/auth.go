package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/logger"
	"github.com/fastygo/todo-service/repository"
)

const bearerPrefix = "Bearer "

// Config controls token issuance.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	BcryptCost int
}

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
}

// Result is returned by Register and Login.
type Result struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Principal identifies the caller behind a verified access token.
type Principal struct {
	UserID    string
	SessionID string
	User      *domain.User
}

type accessClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *UseCase) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, uc.logger).Info("user registered", zap.String("user_id", user.ID))
	return uc.issue(ctx, user, "")
}

// Login verifies credentials. Unknown users, wrong passwords and disabled accounts all
// yield the same AuthenticationFailure.
func (uc *UseCase) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	user, err := uc.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, user, req.UserAgent)
}

// Authenticate accepts either a raw token or an Authorization header value.
func (uc *UseCase) Authenticate(ctx context.Context, authorization string) (*Principal, error) {
	raw := readAccessToken(authorization)
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(uc.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		logger.FromContext(ctx, uc.logger).Debug("rejected access token", zap.Error(err))
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.UserID != claims.Subject || session.IsExpired(uc.now()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}

	return &Principal{UserID: user.ID, SessionID: session.ID, User: user}, nil
}

// Logout revokes the session; tokens bound to it stop authenticating immediately.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrUnauthorized
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User, userAgent string) (*Result, error) {
	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.AccessTTL),
		UserAgent: userAgent,
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	claims := accessClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    uc.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "sign access token", err)
	}

	return &Result{User: user, Token: signed, ExpiresAt: session.ExpiresAt}, nil
}

func readAccessToken(authorization string) string {
	if authorization == "" {
		return ""
	}
	if strings.HasPrefix(authorization, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	}
	if strings.Contains(authorization, " ") {
		return ""
	}
	return authorization
}
