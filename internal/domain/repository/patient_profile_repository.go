package repository

import (
	"go-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByID(db *gorm.DB, id uint) (*entity.PatientProfile, error)
	FindByUserID(db *gorm.DB, userID uint) (*entity.PatientProfile, error)
	Update(db *gorm.DB, profile *entity.PatientProfile) error
}
