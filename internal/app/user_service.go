package app

import (
	"context"
	"errors"
	"strings"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/auth"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("a valid email is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type UserService struct {
	repo   UserRepository
	tokens *auth.TokenIssuer
	clock  clock.Clock
}

func NewUserService(repo UserRepository, tokens *auth.TokenIssuer, clk clock.Clock) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return domain.User{}, ErrNameRequired
	}
	if !validEmail(in.Email) {
		return domain.User{}, ErrEmailRequired
	}
	if len(in.Password) < 8 {
		return domain.User{}, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login checks credentials and returns a signed token with the user. Missing
// account and wrong password collapse into the same error on purpose.
func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, *user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
