package app

import (
	"context"
	"errors"
	"testing"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/stats"
	"hirepulse/internal/domain/user"
)

type fakeStatsRepo struct {
	system stats.System
}

func (f *fakeStatsRepo) Collect(ctx context.Context) (*stats.System, error) {
	copied := f.system
	return &copied, nil
}

func TestStatsPassThrough(t *testing.T) {
	repo := &fakeStatsRepo{system: stats.System{
		TotalUsers:   7,
		TotalJobs:    3,
		JobsByStatus: map[string]int64{"open": 2, "closed": 1},
	}}
	service := NewAdminService(newFakeUserRepo(), repo, noopLogger{})

	system, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if system.TotalUsers != 7 || system.TotalJobs != 3 {
		t.Fatalf("unexpected totals: %+v", system)
	}
	if system.JobsByStatus["open"] != 2 {
		t.Fatalf("unexpected jobs_by_status: %v", system.JobsByStatus)
	}
}

func TestAdminCannotDeactivateSelf(t *testing.T) {
	users := newFakeUserRepo()
	admin, err := users.Create(context.Background(), user.User{Email: "admin@example.com", Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	service := NewAdminService(users, &fakeStatsRepo{}, noopLogger{})

	err = service.SetUserActive(context.Background(), admin, admin.ID, false)
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.Code != common.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
