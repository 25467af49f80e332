package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/solestride/shoe-shop/internal/auth/domain"
)

type memUserRepo struct {
	users   map[string]domain.User // id -> user
	byEmail map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (m *memUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if _, taken := m.byEmail[u.Email]; taken {
		return domain.User{}, ErrEmailTaken
	}
	u.ID = uuid.NewString()
	m.users[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	if _, ok := m.users[u.ID]; !ok {
		return domain.User{}, ErrNotFound
	}
	m.users[u.ID] = u
	return u, nil
}

func newTestService(ttl time.Duration) *Service {
	return NewService(newMemUserRepo(), "test-secret", ttl)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	user, token, err := svc.Register(ctx, "Ada Lovelace", "Ada@Example.com ", "hunter2hunter2", "1 Analytical Way")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in the clear")
	}
	if token == "" {
		t.Fatal("expected a token from Register")
	}

	got, loginToken, err := svc.Login(ctx, "ADA@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned wrong user: %s vs %s", got.ID, user.ID)
	}

	subject, err := svc.VerifyToken(loginToken)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject %s, want %s", subject, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"blank name", "  ", "a@example.com", "hunter2hunter2"},
		{"blank email", "Ada", "", "hunter2hunter2"},
		{"email without at", "Ada", "not-an-email", "hunter2hunter2"},
		{"short password", "Ada", "a@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password, "")
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	if _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", ""); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, _, err := svc.Register(ctx, "Other", "ada@example.com", "hunter2hunter2", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	if _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ada@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		// Unknown email reports the same error as a wrong password.
		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestVerifyTokenRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("tampered token", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, token, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", "")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		tampered := token[:len(token)-2] + "xx"
		if _, err := svc.VerifyToken(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		issuer := newTestService(time.Hour)
		verifier := NewService(newMemUserRepo(), "other-secret", time.Hour)

		_, token, err := issuer.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", "")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc := newTestService(-time.Minute)
		_, token, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", "")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		svc := newTestService(time.Hour)
		if _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	user, _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2", "old address")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, " Ada Lovelace ", " 1 Analytical Way ")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Ada Lovelace" || updated.Address != "1 Analytical Way" {
		t.Fatalf("profile not trimmed/updated: %+v", updated)
	}
	if updated.Email != user.Email {
		t.Fatal("email must not change via UpdateProfile")
	}

	if _, err := svc.UpdateProfile(ctx, user.ID, "", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, uuid.NewString(), "Name", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
