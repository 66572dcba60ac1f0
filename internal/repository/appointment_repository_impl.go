package repository

import (
	"errors"

	"go-clinic-api/internal/domain/entity"
	domainRepo "go-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

// appointmentDetailSelect mirrors the enriched view returned to callers:
// the raw appointment row plus patient/doctor display fields.
const appointmentDetailSelect = `appointments.id,
	appointments.patient_id,
	appointments.doctor_id,
	appointments.appointment_date,
	appointments.appointment_time,
	appointments.status,
	appointments.reason,
	appointments.notes,
	appointments.created_at,
	appointments.updated_at,
	patients.user_id AS patient_user_id,
	patient_users.name AS patient_name,
	patient_users.email AS patient_email,
	doctors.user_id AS doctor_user_id,
	doctor_users.name AS doctor_name,
	doctor_users.email AS doctor_email,
	doctors.specialization AS specialization`

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("appointments").
		Select(appointmentDetailSelect).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN users patient_users ON patient_users.id = patients.user_id").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Joins("JOIN users doctor_users ON doctor_users.id = doctors.user_id")
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindDetailByID(db *gorm.DB, id uint) (*entity.AppointmentDetail, error) {
	var details []entity.AppointmentDetail
	err := detailQuery(db).Where("appointments.id = ?", id).Limit(1).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}

func (r *appointmentRepository) FindDetails(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.AppointmentDetail, error) {
	query := detailQuery(db)
	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("appointments.patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
		}
		if filter.Status != "" {
			query = query.Where("appointments.status = ?", filter.Status)
		}
	}

	var details []entity.AppointmentDetail
	err := query.
		Order("appointments.appointment_date DESC, appointments.appointment_time DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *appointmentRepository) FindActiveSlot(db *gorm.DB, doctorID uint, date, timeOfDay string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where(
		"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status != ?",
		doctorID, date, timeOfDay, entity.AppointmentStatusCancelled,
	).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByPatientID(db *gorm.DB, patientID uint) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) DeleteByDoctorID(db *gorm.DB, doctorID uint) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
