package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/pkg/clock"
)

const minPasswordLength = 6

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming runs a bcrypt comparison against a fixed hash so that an
// unknown username costs as much as a wrong password.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

type noopAuditor struct{}

func (noopAuditor) Record(domain.AuthEvent) {}

// AuthService implements registration, credential verification, login and
// password changes.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenCodec
	tokenTTL time.Duration
	auditor  ports.AuthAuditor
	clock    clock.Clock
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenCodec, tokenTTL time.Duration, auditor ports.AuthAuditor, clk clock.Clock) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 20 * time.Minute
	}
	if auditor == nil {
		auditor = noopAuditor{}
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AuthService{repo: repo, tokens: tokens, tokenTTL: tokenTTL, auditor: auditor, clock: clk}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if !in.Role.Valid() {
		return nil, domain.ErrRecordInvalid.WithMessage("Invalid role")
	}
	if in.Username == "" {
		return nil, domain.ErrRecordInvalid.WithMessage("Username is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrRecordInvalid.WithMessage("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		return nil, domain.ErrRecordInvalid.WithMessage("Username already taken").WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate verifies username and password. An unknown user and a wrong
// password yield the same InvalidCredentials error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		equalizeTiming(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.audit(domain.AuthEventLoginFailed, username, 0)
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.audit(domain.AuthEventLoginSucceeded, user.Username, user.ID)
	return token, user, nil
}

// ChangePassword replaces the actor's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) error {
	if bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials.WithMessage("Current password is incorrect")
	}
	if len(next) < minPasswordLength {
		return domain.ErrRecordInvalid.WithMessage("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, actor.ID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrActorNotFound.WithCause(err)
		}
		return err
	}

	s.audit(domain.AuthEventPasswordChanged, actor.Username, actor.ID)
	return nil
}

func (s *AuthService) audit(kind domain.AuthEventType, username string, userID int64) {
	s.auditor.Record(domain.AuthEvent{
		Type:      kind,
		Username:  username,
		UserID:    userID,
		Timestamp: s.clock.Now(),
	})
}
