package repository

import (
	"go-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindDetailByID(db *gorm.DB, id uint) (*entity.AppointmentDetail, error)
	FindDetails(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.AppointmentDetail, error)
	// FindActiveSlot returns the non-cancelled appointment occupying the
	// (doctor, date, time) slot, or nil if the slot is free.
	FindActiveSlot(db *gorm.DB, doctorID uint, date, timeOfDay string) (*entity.Appointment, error)
	UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(db *gorm.DB, id uint) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uint) error
	DeleteByDoctorID(db *gorm.DB, doctorID uint) error
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error)
}
