package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/internal/auth/store"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	id, err := r.q.CreateUser(ctx, email, passwordHash)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return expectOne(r.q.UpdateLastLogin(ctx, id, at))
}

func (r *usersRepo) SetTOTPSecret(ctx context.Context, id int64, secret string) error {
	return expectOne(r.q.SetTOTPSecret(ctx, id, secret))
}

func (r *usersRepo) EnableTOTP(ctx context.Context, id int64) error {
	return expectOne(r.q.EnableTOTP(ctx, id))
}

func (r *usersRepo) DisableTOTP(ctx context.Context, id int64) error {
	return expectOne(r.q.DisableTOTP(ctx, id))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	return expectOne(r.q.DeleteUser(ctx, id))
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.q.CountUsers(ctx)
}

func expectOne(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
