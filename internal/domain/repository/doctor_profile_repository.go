package repository

import (
	"go-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByID(db *gorm.DB, id uint) (*entity.DoctorProfile, error)
	FindByUserID(db *gorm.DB, userID uint) (*entity.DoctorProfile, error)
	FindAllDetails(db *gorm.DB) ([]entity.DoctorDetail, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
}
