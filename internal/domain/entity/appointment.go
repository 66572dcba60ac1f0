package entity

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValidAppointmentStatus reports whether s is a known status value.
func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusApproved,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents one booked slot of a doctor.
//
// Date and time are stored as ISO strings ("2006-01-02", "15:04") so that
// lexicographic ordering is chronological ordering. The migration declares a
// partial unique index on (doctor_id, appointment_date, appointment_time)
// excluding cancelled rows; that index, not the pre-insert check, is the
// authoritative double-booking guarantee.
type Appointment struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate string            `gorm:"type:varchar(10);not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still awaiting approval
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AppointmentDetail is an appointment row joined with patient/doctor display
// fields, returned to callers instead of raw foreign keys.
type AppointmentDetail struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PatientUserID   uint      `json:"patient_user_id"`
	PatientName     string    `json:"patient_name"`
	PatientEmail    string    `json:"patient_email"`
	DoctorUserID    uint      `json:"doctor_user_id"`
	DoctorName      string    `json:"doctor_name"`
	DoctorEmail     string    `json:"doctor_email"`
	Specialization  string    `json:"specialization,omitempty"`
}
