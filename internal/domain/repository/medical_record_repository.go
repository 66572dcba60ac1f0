package repository

import (
	"go-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	// FindByIDForDoctor returns the record only when it belongs to the given
	// doctor; a record owned by another doctor is reported as absent.
	FindByIDForDoctor(db *gorm.DB, id, doctorID uint) (*entity.MedicalRecord, error)
	FindDetailByID(db *gorm.DB, id uint) (*entity.MedicalRecordDetail, error)
	FindDetailsByPatientID(db *gorm.DB, patientID uint) ([]entity.MedicalRecordDetail, error)
	UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error
	// UnlinkAppointment nulls appointment_id on every record referencing the
	// given appointment (soft unlink; records are never deleted with it).
	UnlinkAppointment(db *gorm.DB, appointmentID uint) error
	DeleteByPatientID(db *gorm.DB, patientID uint) error
	DeleteByDoctorID(db *gorm.DB, doctorID uint) error
	Count(db *gorm.DB) (int64, error)
}
