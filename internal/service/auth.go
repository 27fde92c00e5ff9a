package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tixswap/internal/auth"
	apperrors "tixswap/internal/errors"
	"tixswap/internal/logger"
	"tixswap/internal/models"
)

type AuthService struct {
	users  UserStore
	jwt    *auth.JWTService
	hasher *auth.PasswordHasher
}

func NewAuthService(users UserStore, jwt *auth.JWTService, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, jwt: jwt, hasher: hasher}
}

// Register creates a new user with a hashed credential. Plaintext passwords
// are never stored.
func (s *AuthService) Register(ctx context.Context, req *models.SignupRequest) (*models.SignupResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidation("username", "must not be empty")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidation("password", "must not be empty")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("User registered", "username", username)

	return &models.SignupResponse{ID: user.ID, Username: user.Username}, nil
}

// Login authenticates a credential pair and issues a signed bearer token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		return nil, apperrors.ErrInvalidCredential
	}

	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{Token: token, UserID: user.ID}, nil
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *AuthService) VerifyToken(token string) (string, error) {
	return s.jwt.Verify(token)
}
