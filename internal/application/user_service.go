package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/domain"
	"github.com/morada-homes/service-reservation/internal/domain/user"
)

// RegisterUserRequest holds data to register a user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO carries an issued access token.
type TokenDTO struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// UserService handles registration and authentication use cases.
type UserService struct {
	repo       user.Repository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo user.Repository, jwtManager *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, jwtManager: jwtManager, logger: logger}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserDTO, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("email is already registered")
	}

	u, err := user.NewUser(req.Name, req.Email, req.Phone, req.Role, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", u.Role()),
	)

	dto := toUserDTO(u)
	return &dto, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*TokenDTO, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewValidationError("invalid email or password")
	}

	if !u.CheckPassword(req.Password) {
		return nil, domain.NewValidationError("invalid email or password")
	}

	token, err := s.jwtManager.Generate(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	return &TokenDTO{
		AccessToken: token,
		User:        toUserDTO(u),
	}, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
}
