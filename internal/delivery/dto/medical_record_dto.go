package dto

import "time"

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID     uint   `json:"patient_id" validate:"required,min=1"`
	AppointmentID *uint  `json:"appointment_id" validate:"omitempty,min=1"`
	Diagnosis     string `json:"diagnosis" validate:"omitempty"`
	Prescription  string `json:"prescription" validate:"omitempty"`
	Notes         string `json:"notes" validate:"omitempty"`
	RecordDate    string `json:"record_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"omitempty"`
	Prescription string `json:"prescription" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
	RecordDate   string `json:"record_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentID   *uint     `json:"appointment_id,omitempty"`
	Diagnosis       string    `json:"diagnosis,omitempty"`
	Prescription    string    `json:"prescription,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	RecordDate      string    `json:"record_date"`
	DoctorName      string    `json:"doctor_name"`
	Specialization  string    `json:"specialization,omitempty"`
	AppointmentDate *string   `json:"appointment_date,omitempty"`
	AppointmentTime *string   `json:"appointment_time,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
