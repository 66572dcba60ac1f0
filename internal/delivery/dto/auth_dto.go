package dto

import "time"

// Request DTOs

// RegisterRequest covers all three roles; profile fields are optional and
// only consulted for the matching role (the profile row is created in the
// same transaction as the user).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor"`

	// Patient profile fields
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Address          string `json:"address" validate:"omitempty"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty"`

	// Doctor profile fields
	Specialization  string `json:"specialization" validate:"omitempty"`
	LicenseNumber   string `json:"license_number" validate:"omitempty"`
	ExperienceYears int    `json:"experience_years" validate:"omitempty,gte=0"`
	Bio             string `json:"bio" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	TokenResponse
	User *UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uint                    `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
