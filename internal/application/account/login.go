package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/rs/zerolog/log"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Session   domain.Session
}

type Login interface {
	Execute(ctx context.Context, in LoginInput) (LoginOutput, error)
}

type login struct {
	users    domain.UserRepository
	profiles GetProfile
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewLogin checks credentials and issues a session token. The profile is
// loaded through GetProfile so the token always carries a company.
func NewLogin(users domain.UserRepository, profiles GetProfile, hasher PasswordHasher, tokens TokenIssuer) Login {
	return &login{users: users, profiles: profiles, hasher: hasher, tokens: tokens}
}

func (uc *login) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("login rejected")
		return LoginOutput{}, ErrInvalidCredentials
	}

	profile, err := uc.profiles.Execute(ctx, user.ID)
	if err != nil {
		return LoginOutput{}, err
	}

	session := domain.Session{UserID: user.ID, CompanyID: profile.Company.ID, Email: user.Email}
	token, expiresAt, err := uc.tokens.Issue(session)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}

	return LoginOutput{Token: token, ExpiresAt: expiresAt, Session: session}, nil
}
