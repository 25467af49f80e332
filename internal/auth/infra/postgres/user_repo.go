package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/solestride/shoe-shop/internal/auth/app"
	"github.com/solestride/shoe-shop/internal/auth/domain"
)

const userColumns = `id, name, email, password_hash, address, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ app.UserRepo = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, address)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING `+userColumns,
		uuid.New(), user.Name, user.Email, user.PasswordHash, user.Address,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, err
	}
	return created, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	return user, err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	return user, err
}

func (r *UserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return domain.User{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $2, address = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, user.Name, user.Address,
	)

	updated, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	return updated, err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		user domain.User
		id   uuid.UUID
	)

	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash,
		&user.Address, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}

	user.ID = id.String()
	return user, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
