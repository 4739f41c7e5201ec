package app

import (
	"context"
	"testing"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/auth"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(users ...domain.User) (*UserService, *fakeUserRepo) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)
	repo := newFakeUserRepo(users...)
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour, clk)
	return NewUserService(repo, tokens, clk), repo
}

func TestUserService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		svc, repo := newUserService()

		user, err := svc.Signup(context.Background(), SignupInput{
			Name:     "Asha",
			Email:    "Asha@Example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse"))
		assert.Len(t, repo.users, 1)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@b.co", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "not-an-email", Password: "long enough"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("duplicate email surfaces ErrEmailTaken", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@b.co", Password: "long enough"})
		require.NoError(t, err)
		_, err = svc.Signup(context.Background(), SignupInput{Name: "B", Email: "a@b.co", Password: "long enough"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("long enough")
	require.NoError(t, err)
	existing := domain.User{
		ID:           "user-1",
		Name:         "Asha",
		Email:        "a@b.co",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	t.Run("issues token carrying identity and role", func(t *testing.T) {
		svc, _ := newUserService(existing)
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour, clock.NewFixed(now))

		token, user, err := svc.Login(context.Background(), "a@b.co", "long enough")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, string(domain.RoleAdmin), claims.Role)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		svc, _ := newUserService(existing)
		_, _, err := svc.Login(context.Background(), "a@b.co", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		svc, _ := newUserService(existing)
		_, _, err := svc.Login(context.Background(), "nobody@b.co", "long enough")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}
