package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
	"github.com/sitecrew/workforce-scheduler/internal/pkg/token"
)

const minPasswordLen = 6

var validate = validator.New()

// AuthService implements sign-up, sign-in and session retrieval.
type AuthService struct {
	users     ports.UserRepository
	sessions  SessionManager
	activity  ports.ActivityQueue
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions SessionManager, activity ports.ActivityQueue, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, activity: activity, jwtSecret: jwtSecret, log: log}
}

func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleWorker
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sign up: hash password: %w", err)
	}

	now := nowUTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Status:       domain.StatusPresent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed up")
	record(s.activity, domain.ActivityUserCreated, in.ActorID, user.ID, user.FullName())
	return user, nil
}

// SignIn never tells an unknown email apart from a wrong password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Open(ctx, *user)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	signed, err := token.Issue(s.jwtSecret, user.ID, sess.ID, string(sess.Role), sess.IssuedAt, sess.ExpiresAt.Sub(sess.IssuedAt))
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", sess.ID).Msg("user signed in")
	record(s.activity, domain.ActivitySignedIn, user.ID, user.ID, "")

	return &ports.SignInResult{
		Token:     signed,
		SessionID: sess.ID,
		User:      user,
		Redirect:  user.LandingPath(),
	}, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Close(ctx, sessionID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", sess.UserID).Str("session_id", sessionID).Msg("user signed out")
	record(s.activity, domain.ActivitySignedOut, sess.UserID, sess.UserID, "")
	return nil
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.User, error) {
	sess, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, sess.UserID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
