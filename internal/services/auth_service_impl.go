package services

import (
	"context"
	"strings"

	"github.com/ajharbinger/forensic-omniscient/internal/auth"
	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/repository"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos        *repository.Repositories
	jwtService   *auth.JWTService
	hashPassword func(string) (string, error)
}

// NewAuthService creates an auth service over the user store
func NewAuthService(repos *repository.Repositories, jwtSecret string) AuthService {
	return &authServiceImpl{
		repos:        repos,
		jwtService:   auth.NewJWTService(jwtSecret),
		hashPassword: auth.HashPassword,
	}
}

// Login authenticates a user and returns a token pair
func (s *authServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrCodeNotFound {
			return nil, apperrors.Unauthorized("invalid credentials", nil).WithOperation("Login")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials", nil).WithOperation("Login")
	}

	return s.issueTokens(user)
}

// Register creates an analyst account. New accounts never get the admin
// role.
func (s *authServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err).WithOperation("Register")
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
		Role:         string(models.RoleAnalyst),
	}

	err = s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.User.GetByEmail(ctx, user.Email)
		if err == nil && existing != nil {
			return apperrors.Conflict("user already exists", nil).WithOperation("Register")
		}
		if err != nil && apperrors.Code(err) != apperrors.ErrCodeNotFound {
			return err
		}
		return tx.User.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ValidateToken validates an access token and returns the user it names
func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err).WithOperation("ValidateToken")
	}

	user, err := s.repos.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrCodeNotFound {
			return nil, apperrors.Unauthorized("user no longer exists", err).WithOperation("ValidateToken")
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err).WithOperation("RefreshToken")
	}

	user, err := s.repos.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrCodeNotFound {
			return nil, apperrors.Unauthorized("user no longer exists", err).WithOperation("RefreshToken")
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *authServiceImpl) issueTokens(user *models.User) (*models.AuthResponse, error) {
	claims := auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, expiresAt, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err).WithOperation("issueTokens")
	}
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate refresh token", err).WithOperation("issueTokens")
	}

	return &models.AuthResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User: models.User{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}
