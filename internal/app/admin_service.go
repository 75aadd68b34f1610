package app

import (
	"context"
	"fmt"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/stats"
	"hirepulse/internal/domain/user"
)

type AdminService struct {
	users  user.Repository
	stats  stats.Repository
	logger Logger
}

func NewAdminService(users user.Repository, stats stats.Repository, logger Logger) *AdminService {
	return &AdminService{users: users, stats: stats, logger: logger}
}

func (s *AdminService) Stats(ctx context.Context) (*stats.System, error) {
	return s.stats.Collect(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]user.User, error) {
	return s.users.List(ctx, page, limit)
}

// SetUserActive toggles the soft-delete flag. Admins cannot deactivate
// themselves; that would lock the last admin out.
func (s *AdminService) SetUserActive(ctx context.Context, admin *user.User, id common.ID, active bool) error {
	if admin.ID == id && !active {
		return common.NewValidationError("invalid request", map[string]string{"user_id": "cannot deactivate your own account"})
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("user active flag changed user_id=%s active=%t by=%s", id, active, admin.ID))
	return nil
}
