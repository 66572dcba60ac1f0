package repository

import (
	"go-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindAll(db *gorm.DB, role string) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uint) (int64, error)
	CountByRole(db *gorm.DB, role string) (int64, error)
}
