package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/domain/users"
	"github.com/agung037/cv-processor/internal/logger"
)

// Service use-case admin atas akun user
type Service struct {
	Users  users.Repository
	Logger *zap.Logger
}

// ListUsers returns every account except the requester, newest first.
func (s *Service) ListUsers(ctx context.Context, requesterID int64) ([]*users.User, error) {
	list, err := s.Users.ListExcept(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*users.User{}
	}
	return list, nil
}

// target ambil user non-admin; admin tidak boleh diubah
func (s *Service) target(ctx context.Context, id int64) (*users.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsAdmin() {
		return nil, users.ErrProtected
	}
	return u, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.target(ctx, id); err != nil {
		return err
	}
	if err := s.Users.SetActive(ctx, id, active); err != nil {
		return err
	}
	logger.OrNop(s.Logger).Info("user status changed", zap.Int64("user_id", id), zap.Bool("is_active", active))
	return nil
}

// Delete removes a non-admin account. Its history goes with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.target(ctx, id); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}
	logger.OrNop(s.Logger).Info("user deleted", zap.Int64("user_id", id))
	return nil
}
