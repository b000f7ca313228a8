package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type tokenIssuer interface {
	Generate(userID int64) (string, error)
}

// Service contains signup/login logic and resolves token subjects to
// request identities.
type Service struct {
	users  Repository
	tokens tokenIssuer
}

type AuthResult struct {
	Token string
	User  Identity
}

func NewService(users Repository, tokens tokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	username := strings.TrimSpace(req.Username)

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// two racing signups can both pass the existence check; the
		// loser lands on the unique index instead
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Identity resolves a verified token subject to the current account
// projection. ErrUserNotFound means the account no longer exists and
// must be treated as an authentication failure by callers.
func (s *Service) Identity(ctx context.Context, userID int64) (Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	return identityOf(user), nil
}

func (s *Service) issue(user *User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: identityOf(user)}, nil
}
