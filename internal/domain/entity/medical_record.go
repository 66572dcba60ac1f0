package entity

import "time"

// MedicalRecord is a diagnosis/prescription entry written by a doctor for a
// patient, optionally anchored to one appointment. When the appointment is
// deleted the record keeps existing with appointment_id set to null.
type MedicalRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID      uint      `gorm:"not null;index" json:"doctor_id"`
	AppointmentID *uint     `gorm:"index" json:"appointment_id,omitempty"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription  string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	RecordDate    string    `gorm:"type:varchar(10);not null" json:"record_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// MedicalRecordDetail is a record row joined with the authoring doctor and,
// when still linked, its appointment slot.
type MedicalRecordDetail struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentID   *uint     `json:"appointment_id,omitempty"`
	Diagnosis       string    `json:"diagnosis,omitempty"`
	Prescription    string    `json:"prescription,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	RecordDate      string    `json:"record_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	DoctorName      string    `json:"doctor_name"`
	Specialization  string    `json:"specialization,omitempty"`
	AppointmentDate *string   `json:"appointment_date,omitempty"`
	AppointmentTime *string   `json:"appointment_time,omitempty"`
}
