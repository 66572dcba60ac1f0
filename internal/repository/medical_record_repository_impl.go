package repository

import (
	"errors"

	"go-clinic-api/internal/domain/entity"
	domainRepo "go-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

const medicalRecordDetailSelect = `medical_records.id,
	medical_records.patient_id,
	medical_records.doctor_id,
	medical_records.appointment_id,
	medical_records.diagnosis,
	medical_records.prescription,
	medical_records.notes,
	medical_records.record_date,
	medical_records.created_at,
	medical_records.updated_at,
	users.name AS doctor_name,
	doctors.specialization AS specialization,
	appointments.appointment_date AS appointment_date,
	appointments.appointment_time AS appointment_time`

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func recordDetailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("medical_records").
		Select(medicalRecordDetailSelect).
		Joins("JOIN doctors ON doctors.id = medical_records.doctor_id").
		Joins("JOIN users ON users.id = doctors.user_id").
		Joins("LEFT JOIN appointments ON appointments.id = medical_records.appointment_id")
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Create(record).Error
}

func (r *medicalRecordRepository) FindByIDForDoctor(db *gorm.DB, id, doctorID uint) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindDetailByID(db *gorm.DB, id uint) (*entity.MedicalRecordDetail, error) {
	var details []entity.MedicalRecordDetail
	err := recordDetailQuery(db).Where("medical_records.id = ?", id).Limit(1).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}

func (r *medicalRecordRepository) FindDetailsByPatientID(db *gorm.DB, patientID uint) ([]entity.MedicalRecordDetail, error) {
	var details []entity.MedicalRecordDetail
	err := recordDetailQuery(db).
		Where("medical_records.patient_id = ?", patientID).
		Order("medical_records.record_date DESC, medical_records.created_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *medicalRecordRepository) UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error {
	return db.Model(&entity.MedicalRecord{}).Where("id = ?", id).Updates(updates).Error
}

func (r *medicalRecordRepository) UnlinkAppointment(db *gorm.DB, appointmentID uint) error {
	return db.Model(&entity.MedicalRecord{}).
		Where("appointment_id = ?", appointmentID).
		Update("appointment_id", nil).Error
}

func (r *medicalRecordRepository) DeleteByPatientID(db *gorm.DB, patientID uint) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.MedicalRecord{}).Error
}

func (r *medicalRecordRepository) DeleteByDoctorID(db *gorm.DB, doctorID uint) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.MedicalRecord{}).Error
}

func (r *medicalRecordRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.MedicalRecord{}).Count(&count).Error
	return count, err
}
