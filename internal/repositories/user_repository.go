package repositories

import (
	"errors"

	"freelance_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindActiveByRole(db *gorm.DB, role models.UserRole) ([]models.User, error)
	UpdateBio(db *gorm.DB, userID string, bio datatypes.JSON) error
	// ForEachInBatches обходит всех пользователей пачками; ошибка fn останавливает обход
	ForEachInBatches(db *gorm.DB, batchSize int, fn func(user *models.User) error) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindActiveByRole(db *gorm.DB, role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := db.Where("role = ? AND status = ?", role, models.UserStatusActive).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) UpdateBio(db *gorm.DB, userID string, bio datatypes.JSON) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("bio", bio)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ForEachInBatches(db *gorm.DB, batchSize int, fn func(user *models.User) error) error {
	var batch []models.User
	result := db.Model(&models.User{}).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			if err := fn(&batch[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return result.Error
}
