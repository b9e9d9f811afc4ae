package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repositories"
	"roomrent/services/logger"
)

type AuthService struct {
	store  *repositories.Store
	tokens *TokenService
	logger logger.Logger
}

type AuthServiceOptions struct {
	Store  *repositories.Store
	Tokens *TokenService
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{store: opts.Store, tokens: opts.Tokens, logger: opts.Logger}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// registrationRole maps the requested role; unknown values become TENANT
func registrationRole(requested string) (string, error) {
	role := strings.ToUpper(strings.TrimSpace(requested))
	switch role {
	case constants.RoleOwner, constants.RoleTenant:
		return role, nil
	case constants.RoleAdmin:
		return "", errors.Forbidden("admin accounts cannot self-register")
	default:
		return constants.RoleTenant, nil
	}
}

// Register creates a user and signs them in. Owners start PENDING approval.
func (s *AuthService) Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResponse, error) {
	role, err := registrationRole(input.Role)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	_, err = s.store.Users().GetByEmail(ctx, email)
	if err == nil {
		return nil, errors.NewAppError(errors.ErrCodeUserExists, "email already in use", nil).WithField("email")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "could not hash password", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         role,
	}
	if role == constants.RoleOwner {
		pending := constants.ApprovalPending
		user.OwnerStatus = &pending
	}
	if err := s.store.Users().CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user %d registered as %s", user.ID, user.Role)
	return s.issue(user)
}

func (s *AuthService) SignIn(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPassword, "invalid credentials", nil)
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "could not sign token", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Role:        user.Role,
			OwnerStatus: user.OwnerStatus,
		},
	}, nil
}
