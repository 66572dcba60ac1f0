package repository

import (
	"errors"

	"go-clinic-api/internal/domain/entity"
	domainRepo "go-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByID(db *gorm.DB, id uint) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAllDetails(db *gorm.DB) ([]entity.DoctorDetail, error) {
	var details []entity.DoctorDetail
	err := db.Table("doctors").
		Select(`doctors.id,
			doctors.user_id,
			users.name,
			users.email,
			doctors.specialization,
			doctors.phone,
			doctors.address,
			doctors.license_number,
			doctors.experience_years,
			doctors.bio,
			users.created_at`).
		Joins("JOIN users ON users.id = doctors.user_id").
		Order("users.name ASC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Save(profile).Error
}
