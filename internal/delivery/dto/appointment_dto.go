package dto

import "time"

// Request DTOs

// CreateAppointmentRequest books a slot. PatientID is ignored for patient
// callers (derived from their own profile) and required for everyone else.
type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required,datetime=15:04"`
	Reason          string `json:"reason" validate:"omitempty"`
	PatientID       *uint  `json:"patient_id" validate:"omitempty,min=1"`
}

// UpdateAppointmentRequest is a partial update; only supplied fields mutate.
// Notes is a pointer so callers can clear it with an explicit empty string.
type UpdateAppointmentRequest struct {
	Status          string  `json:"status" validate:"omitempty,oneof=pending approved completed cancelled"`
	AppointmentDate string  `json:"appointment_date" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime string  `json:"appointment_time" validate:"omitempty,datetime=15:04"`
	Notes           *string `json:"notes" validate:"omitempty"`
}

// ListAppointmentsQuery carries the query-string filters. PatientID and
// DoctorID are only honored for admin callers.
type ListAppointmentsQuery struct {
	Status    string
	PatientID *uint
	DoctorID  *uint
}

// Response DTOs

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	PatientUserID   uint      `json:"patient_user_id"`
	PatientName     string    `json:"patient_name"`
	PatientEmail    string    `json:"patient_email"`
	DoctorUserID    uint      `json:"doctor_user_id"`
	DoctorName      string    `json:"doctor_name"`
	DoctorEmail     string    `json:"doctor_email"`
	Specialization  string    `json:"specialization,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
