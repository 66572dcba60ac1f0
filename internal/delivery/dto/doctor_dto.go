package dto

import "time"

// Response DTOs

// DoctorResponse is a public doctor directory entry (joined with the owning
// user's display fields).
type DoctorResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Specialization  string    `json:"specialization,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Address         string    `json:"address,omitempty"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
