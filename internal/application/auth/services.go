package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/application"
	"github.com/agung037/cv-processor/internal/domain/users"
	"github.com/agung037/cv-processor/internal/infra/security"
	"github.com/agung037/cv-processor/internal/logger"
)

var (
	ErrTokenMissing = fmt.Errorf("%w: token not found", users.ErrUnauthorized)
	ErrTokenInvalid = fmt.Errorf("%w: token invalid or expired", users.ErrUnauthorized)
	ErrUserGone     = fmt.Errorf("%w: token user no longer exists", users.ErrUnauthorized)
)

// Service use-case akun: register, login, verifikasi token
type Service struct {
	Users  users.Repository
	Tokens *security.TokenIssuer
	Clock  application.Clock
	Logger *zap.Logger
}

type RegisterCommand struct {
	Username string `json:"username" validate:"required,max=191"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User  *users.User
	Token string
}

// Register creates an inactive account with role user.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (int64, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(cmd.Email)
	if err := check(cmd, "Username, email, dan password diperlukan."); err != nil {
		return 0, err
	}

	exists, err := s.Users.ExistsByUsernameOrEmail(ctx, cmd.Username, cmd.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, users.ErrConflict
	}

	hash, err := security.HashPassword(cmd.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		// multibyte password under 72 chars but over 72 bytes
		return 0, &ValidationError{
			Field:   "Password",
			Tag:     "max",
			Message: fmt.Sprintf("Password maksimal %d byte.", security.MaxPasswordBytes),
		}
	}
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Users.Create(ctx, &users.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		Role:         users.RoleUser,
		IsActive:     false,
		CreatedAt:    application.ClockOrSystem(s.Clock).Now(),
	})
	if err != nil {
		return 0, err
	}
	logger.OrNop(s.Logger).Info("user registered", zap.Int64("user_id", id), zap.String("username", cmd.Username))
	return id, nil
}

// Login checks credentials then activation, and issues a session token.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	if err := check(cmd, "Username dan password diperlukan."); err != nil {
		return LoginResult{}, err
	}

	u, err := s.Users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return LoginResult{}, users.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if err := security.ComparePassword(u.PasswordHash, cmd.Password); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			logger.OrNop(s.Logger).Warn("stored password hash unreadable", zap.Int64("user_id", u.ID), zap.Error(err))
		}
		return LoginResult{}, users.ErrInvalidCredentials
	}
	if !u.IsActive {
		return LoginResult{}, users.ErrInactive
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Token: token}, nil
}

// Authenticate resolves a session token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (*users.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenMissing
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	u, err := s.Users.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, users.ErrInactive
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, id int64) (*users.User, error) {
	return s.Users.Get(ctx, id)
}

// EnsureAdmin bikin akun admin aktif kalau username belum ada
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" {
		return false, nil
	}
	_, err := s.Users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return false, err
	}
	if password == "" {
		return false, errors.New("bootstrap admin password is empty")
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin password: %w", err)
	}
	if email == "" {
		email = username + "@localhost"
	}
	id, err := s.Users.Create(ctx, &users.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		IsActive:     true,
		CreatedAt:    application.ClockOrSystem(s.Clock).Now(),
	})
	if err != nil {
		return false, err
	}
	logger.OrNop(s.Logger).Info("bootstrap admin created", zap.Int64("user_id", id), zap.String("username", username))
	return true, nil
}
