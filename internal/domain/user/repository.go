package user

import (
	"context"

	"hirepulse/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id common.ID) error
	UpdatePasswordHash(ctx context.Context, id common.ID, hash string) error
	SetActive(ctx context.Context, id common.ID, active bool) error
	List(ctx context.Context, page, limit int) ([]User, error)
}
