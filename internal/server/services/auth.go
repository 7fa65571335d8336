// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, and resolving a verified
// token subject back to a principal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vpopov/authgate/internal/common"
	"github.com/vpopov/authgate/internal/dbx"
	"github.com/vpopov/authgate/internal/server/models"
	"github.com/vpopov/authgate/internal/server/password"
	"github.com/vpopov/authgate/internal/server/repositories/repomanager"
)

// TokenIssuer is the part of the token package AuthService needs: minting a
// signed token for a principal. Verification happens at the transport
// boundary, before Resolve is called.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// Credentials is the transient registration input. The plaintext password is
// hashed immediately and never stored, logged, or returned.
type Credentials struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult bundles a freshly issued token with the sanitized principal.
type AuthResult struct {
	AccessToken string
	Principal   *models.Principal
}

// dummyDigest is a well-formed bcrypt digest verified against when a login
// names an unknown user, so the miss path costs one real bcrypt compare and
// timing does not reveal whether the username exists. The comparison result
// is discarded on that path.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService provides the credential lifecycle:
// - Register: uniqueness check, password hashing, user creation, token issue
// - Login: credential verification and token issue
// - Resolve: token subject -> current principal
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      password.Hasher
	issuer      TokenIssuer
}

// NewAuthService constructs an AuthService from its collaborators. All of
// them are fixed at construction; the service itself is stateless.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h password.Hasher, i TokenIssuer) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		issuer:      i,
	}
}

// Register creates a new user and issues a token for it.
//
// A record colliding on email OR username blocks registration with
// ErrDuplicateUser; which field collided is not reported. The pre-check and
// insert run in one transaction, but the database unique indexes remain the
// authority: a racing duplicate that slips past the pre-check surfaces from
// the insert and is reported as the same ErrDuplicateUser. Exactly one
// record is created on success, none on any failure path.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (*AuthResult, error) {

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmailOrUsername(ctx, creds.Email, creds.Username)
		if err == nil {
			return common.ErrDuplicateUser
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("error checking uniqueness: %w", err)
		}

		digest, err := s.hasher.Hash(creds.Password)
		if err != nil {
			return err
		}

		created, err = repo.Insert(ctx, &models.User{
			Email:        creds.Email,
			Username:     creds.Username,
			PasswordHash: digest,
			FirstName:    creds.FirstName,
			LastName:     creds.LastName,
		})
		if err != nil {
			if errors.Is(err, common.ErrUniqueViolation) {
				return common.ErrDuplicateUser
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.Issue(created.ID, created.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{AccessToken: accessToken, Principal: created.Principal()}, nil
}

// Login verifies a username/password pair and issues a token. An unknown
// username and a wrong password both fail with ErrInvalidCredentials; the
// two cases are indistinguishable to the caller. Read-only on every path.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(plaintext, dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{AccessToken: accessToken, Principal: user.Principal()}, nil
}

// Resolve maps a verified token subject to the current principal. A missing
// record is not an error: it returns (nil, nil) and the boundary decides the
// rejection policy, so stale tokens for deleted accounts never resolve.
func (s *AuthService) Resolve(ctx context.Context, id string) (*models.Principal, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return user.Principal(), nil
}
