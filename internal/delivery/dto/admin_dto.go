package dto

// Request DTOs

// UpdateUserRequest is the admin user patch. Role is deliberately absent:
// a user's role is fixed at registration.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type DashboardStatsResponse struct {
	TotalPatients         int64 `json:"total_patients"`
	TotalDoctors          int64 `json:"total_doctors"`
	TotalAppointments     int64 `json:"total_appointments"`
	PendingAppointments   int64 `json:"pending_appointments"`
	ApprovedAppointments  int64 `json:"approved_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	TotalMedicalRecords   int64 `json:"total_medical_records"`
}
