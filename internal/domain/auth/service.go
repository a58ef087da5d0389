package auth

import (
	"context"
	"fmt"
	"time"

	"invacc/internal/core/apperror"
	"invacc/pkg/logger"
)

// TokenPair is an issued access token.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Service issues tokens for the built-in user directory.
type Service struct {
	users      map[string]User
	jwtService *JWTService
}

// NewService creates a new auth service over users.
func NewService(jwtService *JWTService, users []User) *Service {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Service{users: byName, jwtService: jwtService}
}

// Lookup returns the user with username.
func (s *Service) Lookup(username string) (User, error) {
	u, ok := s.users[username]
	if !ok {
		return User{}, apperror.NewNotFound("user", username)
	}
	return u, nil
}

// IssueToken signs an access token for username.
func (s *Service) IssueToken(ctx context.Context, username string) (*TokenPair, error) {
	u, err := s.Lookup(username)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.UserContext())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info(ctx, "access token issued", "username", u.Username, "role", u.Role, "expires_at", expiresAt)

	return &TokenPair{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}
