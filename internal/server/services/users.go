// Package services contains the server-side business logic: accounts and
// tokens, context assembly, the chat turn pipeline, daily reports,
// feedback, history reads and the trusted tool operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

const (
	// DemoEmail is the shared demo account identity.
	DemoEmail    = "demo@pulsepal.app"
	demoPassword = "demo-pass"

	tokenBytes        = 24
	minPasswordLength = 6
)

// AuthResult is what every successful auth operation returns.
type AuthResult struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
	Demo   bool   `json:"demo,omitempty"`
}

// UserService handles signup, login, the demo account and token checks.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// SignUp creates an account, seeds its memory document and issues a token,
// all in one transaction so a duplicate email leaves no rows behind.
func (s *UserService) SignUp(ctx context.Context, email, password, timezone string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	if timezone == "" {
		timezone = "UTC"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: string(hash),
			Timezone:     timezone,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			return err
		}

		if err := s.repomanager.Memories(tx).Save(ctx, user.ID, models.NewMemoryDocument(), time.Now()); err != nil {
			return err
		}

		token, err := mintToken(ctx, s.repomanager, tx, user.ID)
		if err != nil {
			return err
		}

		result = &AuthResult{UserID: user.ID, Token: token}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email already exists", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return result, nil
}

// Login verifies credentials and issues a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := mintToken(ctx, s.repomanager, s.db, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Token: token}, nil
}

// DemoLogin signs into the shared demo account, creating it on first use.
func (s *UserService) DemoLogin(ctx context.Context) (*AuthResult, error) {
	var result *AuthResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByEmail(ctx, DemoEmail)
		if errors.Is(err, common.ErrorNotFound) {
			hash, herr := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
				Email:        DemoEmail,
				PasswordHash: string(hash),
				Timezone:     "UTC",
				CreatedAt:    time.Now(),
			})
			if err != nil {
				return err
			}
			doc := models.NewMemoryDocument()
			doc["preferences"] = map[string]any{"mode": "demo"}
			if err := s.repomanager.Memories(tx).Save(ctx, user.ID, doc, time.Now()); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		token, err := mintToken(ctx, s.repomanager, tx, user.ID)
		if err != nil {
			return err
		}
		result = &AuthResult{UserID: user.ID, Token: token, Demo: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Authenticate resolves a bearer token to a user id.
func (s *UserService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorInvalidToken
	}
	userID, err := s.repomanager.Tokens(s.db).GetUserID(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorInvalidToken
		}
		return 0, common.ErrorInternal
	}
	return userID, nil
}

func mintToken(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, userID int64) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("error minting token: %w", err)
	}
	err = m.Tokens(db).Create(ctx, &models.AuthToken{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
