// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, password updates and
// issuing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/cryptox"
	"github.com/dmitrijs2005/journalkeeper/internal/server/auth"
	"github.com/dmitrijs2005/journalkeeper/internal/server/config"
	"github.com/dmitrijs2005/journalkeeper/internal/server/hashpool"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/repomanager"
)

// LoginResult is the successful outcome of Login: a bearer access token
// and its lifetime in seconds.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint an access token
// - UpdatePassword: replace the stored credential
//
// Password hashing and verification run through the hash pool so a burst
// of auth traffic cannot starve unrelated request handling.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hashes                      *hashpool.Pool
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hashes *hashpool.Pool, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hashes:                      hashes,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The username must be unique
// (common.ErrorAlreadyExists otherwise) and the email syntactically valid.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	var fields []string
	if strings.TrimSpace(username) == "" {
		fields = append(fields, "username")
	}
	if password == "" {
		fields = append(fields, "password")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, "email")
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(fields...)
	}

	credential, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: username, Password: credential, Email: email}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password against the stored credential and, on
// success, returns a fresh access token. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	userID, credential, err := s.repomanager.Users(s.db).FindCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	var matches bool
	if err := s.hashes.Do(ctx, func() error {
		var verifyErr error
		matches, verifyErr = cryptox.VerifyPassword(password, credential)
		return verifyErr
	}); err != nil {
		// A corrupt stored credential is a server-side defect, not a
		// caller error.
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !matches {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTokenValidityDuration.Seconds()),
	}, nil
}

// UpdatePassword replaces the user's credential. Returns
// common.ErrorNotFound if the user row is gone.
func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return common.NewValidationError("password")
	}

	credential, err := s.hashPassword(ctx, password)
	if err != nil {
		return err
	}

	found, err := s.repomanager.Users(s.db).UpdatePassword(ctx, userID, credential)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if !found {
		return common.ErrorNotFound
	}
	return nil
}

// ValidateToken resolves a session token into the caller's user id.
func (s *UserService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) hashPassword(ctx context.Context, password string) (string, error) {
	var credential string
	if err := s.hashes.Do(ctx, func() error {
		var hashErr error
		credential, hashErr = cryptox.HashPassword(password)
		return hashErr
	}); err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return credential, nil
}
