package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blossomhq/blossom/internal/auth"
	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/blossomhq/blossom/internal/store"
	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RecentTasksLimit caps the task preview returned by Login.
const RecentTasksLimit = 5

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User        *model.User      `json:"user"`
	Tokens      *model.TokenPair `json:"tokens"`
	RecentTasks []model.Task     `json:"recentTasks,omitempty"`
	TaskCount   int              `json:"taskCount"`
}

// Profile is the current user plus task summary.
type Profile struct {
	User        *model.User  `json:"user"`
	TaskCount   int          `json:"taskCount"`
	RecentTasks []model.Task `json:"recentTasks"`
}

// AuthService orchestrates registration, login and token refresh. The
// server keeps no session state; identity lives entirely in the tokens.
type AuthService struct {
	users  *store.UserStore
	tasks  *store.TaskStore
	hasher *auth.Hasher
	tokens *auth.TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(users *store.UserStore, tasks *store.TaskStore, hasher *auth.Hasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tasks: tasks, hasher: hasher, tokens: tokens}
}

// Register creates an account and issues a token pair. The email is
// lowercased; the username defaults to the email local part.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", model.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: please provide a valid email address", model.ErrValidation)
	}

	if v := auth.ValidatePassword(password); !v.IsValid {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(v.Errors, ", "))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Theme:        model.DefaultTheme,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", logger.F("email", user.Email))
	return &AuthResult{User: user, Tokens: pair}, nil
}

// Login authenticates by email and password. An unknown email is
// ErrNotFound, a wrong password ErrUnauthorized. On success the newest
// tasks ride along so clients can paint a dashboard immediately.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", model.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: no blossom found with this email", model.ErrNotFound)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: incorrect password", model.ErrUnauthorized)
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	recent, err := s.tasks.Recent(ctx, user.ID, RecentTasksLimit)
	if err != nil {
		return nil, err
	}
	decorateOverdue(recent, time.Now().UTC())

	logger.Info("user logged in", logger.F("email", user.Email))
	return &AuthResult{
		User:        user,
		Tokens:      pair,
		RecentTasks: recent,
		TaskCount:   len(recent),
	}, nil
}

// Refresh verifies a refresh token and mints a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, *model.User, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid or expired refresh token", model.ErrUnauthorized)
	}
	if claims.Type != auth.TokenTypeRefresh {
		return "", nil, fmt.Errorf("%w: invalid token type", model.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: user no longer exists", model.ErrUnauthorized)
	}

	access, err := s.tokens.Issue(user, auth.TokenTypeAccess)
	if err != nil {
		return "", nil, err
	}
	return access, user, nil
}

// Validate lets clients proactively check a token. Any failure, including
// a deleted user, is ErrUnauthorized.
func (s *AuthService) Validate(ctx context.Context, token string) (*model.User, *auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: user no longer exists", model.ErrUnauthorized)
	}
	return user, claims, nil
}

// GetProfile returns the current user with a short task summary.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.tasks.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.tasks.Recent(ctx, userID, 3)
	if err != nil {
		return nil, err
	}
	decorateOverdue(recent, time.Now().UTC())

	return &Profile{User: user, TaskCount: count, RecentTasks: recent}, nil
}
