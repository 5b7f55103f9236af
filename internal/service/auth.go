package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

const minPasswordLength = 6

// Auth is the identity provider: email/password accounts plus demo sessions.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
	hashCost     int
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
		hashCost:     bcrypt.DefaultCost,
	}
}

// SignUp registers a user and starts a session.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.Session, error) {
	email := strings.TrimSpace(params.Email)
	a.logger.Debug("Auth service: starting user registration", "email", email)

	if err := validateCredentials(email, params.Password); err != nil {
		return model.Session{}, err
	}
	if params.Password != params.ConfirmPassword {
		return model.Session{}, model.NewValidationError("confirmPassword", "Passwords do not match")
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.Session{}, model.ErrEmailTaken
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email", "email", email, "error", err)
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.hashCost)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user", "email", email, "error", err)
		return model.Session{}, err
	}

	session, err := a.tokenService.Issue(ctx, model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully", "user_id", user.ID)
	return session, nil
}

// Login verifies credentials and starts a session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	a.logger.Debug("Auth service: starting user login", "email", email)

	if err := validateCredentials(email, password); err != nil {
		return model.Session{}, err
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email", "email", email, "error", err)
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: invalid password", "user_id", user.ID)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := a.tokenService.Issue(ctx, model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)
	return session, nil
}

// StartDemo opens a demo session. Its data lives only in the local cache
// under a fresh session id.
func (a *Auth) StartDemo(_ context.Context) (model.Session, error) {
	identity := model.Identity{UserID: uuid.New(), Demo: true}

	session, err := a.tokenService.IssueDemo(identity)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: demo session started", "scope", identity.CacheScope())
	return session, nil
}

// Refresh rotates the presented refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	return a.tokenService.Refresh(ctx, refreshToken)
}

// Logout revokes the presented refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if err := a.tokenService.RevokeByToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return model.NewValidationError("email", "Please enter a valid email address")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("email", "Please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		return model.NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}
