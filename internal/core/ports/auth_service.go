package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// SignUpInput creates a new employee account.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role // defaults to worker
	ActorID   string
}

// SignInResult is returned on a successful sign-in.
type SignInResult struct {
	Token     string
	SessionID string
	User      *domain.User
	// Redirect is the landing page for the user's role.
	Redirect string
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignOut(ctx context.Context, sessionID string) error
	// Session returns the user behind a live session.
	Session(ctx context.Context, sessionID string) (*domain.User, error)
}
