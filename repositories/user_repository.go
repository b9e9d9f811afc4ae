package repositories

import (
	"context"

	"gorm.io/gorm"

	"roomrent/constants"
	"roomrent/models"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListPendingOwners(ctx context.Context) ([]models.User, error)
	UpdateOwnerStatus(ctx context.Context, ownerID uint, status string) error
	Count(ctx context.Context) (int64, error)
	CountPendingOwners(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	return dbErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) ListPendingOwners(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND owner_status = ?", constants.RoleOwner, constants.ApprovalPending).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return users, nil
}

func (r *userRepository) UpdateOwnerStatus(ctx context.Context, ownerID uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", ownerID, constants.RoleOwner).
		Update("owner_status", status)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "owner not found")
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, dbErr(err)
}

func (r *userRepository) CountPendingOwners(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND owner_status = ?", constants.RoleOwner, constants.ApprovalPending).
		Count(&n).Error
	return n, dbErr(err)
}
