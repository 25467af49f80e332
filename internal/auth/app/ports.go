package app

import (
	"context"

	"github.com/solestride/shoe-shop/internal/auth/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}
