package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morada-homes/service-reservation/internal/domain"
	userDomain "github.com/morada-homes/service-reservation/internal/domain/user"
)

// UserModel is the GORM persistence model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        string    `gorm:"type:varchar(50)"`
	Role         string    `gorm:"type:varchar(20);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserRepositoryImpl is the GORM-based implementation of user.Repository.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// FindByID retrieves a user by its unique ID.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id.String())
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// FindByEmail retrieves a user by email.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", email)
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// Save persists a new user.
func (r *UserRepositoryImpl) Save(ctx context.Context, u *userDomain.User) error {
	model := &UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		Phone:        u.Phone(),
		Role:         u.Role(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// userToDomain maps a UserModel to the domain aggregate.
func userToDomain(model *UserModel) *userDomain.User {
	return userDomain.Reconstitute(
		model.ID,
		model.Name,
		model.Email,
		model.Phone,
		model.Role,
		model.PasswordHash,
		model.CreatedAt,
	)
}
