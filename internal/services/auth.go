// Package services contains the application services of the sociallog CLI:
// identity (login/logout) and the post lifecycle.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kspdigital/sociallog-cli/internal/api"
	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/models"
	"github.com/kspdigital/sociallog-cli/internal/store"
)

var (
	// ErrCredentialExpired means the pasted identity credential is already
	// past its exp claim; the verify round trip is skipped.
	ErrCredentialExpired = errors.New("credential expired")

	// ErrNotLoggedIn means an operation requiring a session ran without one.
	ErrNotLoggedIn = errors.New("not logged in")
)

// AuthService verifies an identity credential against the identity endpoint
// and manages the locally persisted session. There is no server-side
// session: logout only clears local state.
type AuthService interface {
	Login(ctx context.Context, credential string) (models.Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  *store.Store
	log    logging.Logger
}

func NewAuthService(client api.Client, st *store.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: st, log: log}
}

// Login pre-parses the credential without signature verification, only to
// short-circuit on an expired token before the round trip, then verifies it
// remotely, fills any gaps in the normalized session from the credential's
// own claims, and persists the session locally.
func (a *authService) Login(ctx context.Context, credential string) (models.Session, error) {
	claims := credentialClaims(credential)

	if exp, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(exp), 0).Before(time.Now()) {
			return models.Session{}, ErrCredentialExpired
		}
	}

	session, err := a.client.VerifyIdentity(ctx, credential)
	if err != nil {
		return models.Session{}, fmt.Errorf("identity verification: %w", err)
	}

	fillFromClaims(&session, claims)

	if err := a.store.SetSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("persisting session: %w", err)
	}

	a.log.Info(ctx, "logged in", "email", session.Email, "employee_code", session.EmployeeCode)
	return session, nil
}

// Logout clears the identity and its cache entry. The post list is left
// stale in memory until the next login syncs.
func (a *authService) Logout(ctx context.Context) error {
	return a.store.ClearSession(ctx)
}

// credentialClaims decodes the claims of a JWT credential without verifying
// its signature; verification belongs to the identity endpoint. A malformed
// credential yields empty claims and is still sent upstream to be rejected
// authoritatively.
func credentialClaims(credential string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(credential, claims)
	if err != nil {
		return jwt.MapClaims{}
	}
	return claims
}

// fillFromClaims patches fields the identity endpoint left at their
// defaults with values from the credential itself.
func fillFromClaims(s *models.Session, claims jwt.MapClaims) {
	if s.Email == "" {
		if v, ok := claims["email"].(string); ok {
			s.Email = v
		}
	}
	if s.Name == "" || s.Name == "User" {
		if v, ok := claims["name"].(string); ok && v != "" {
			s.Name = v
		}
	}
	if s.AvatarURL == "" {
		if v, ok := claims["picture"].(string); ok {
			s.AvatarURL = v
		}
	}
}
