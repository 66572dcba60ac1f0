package dto

// Request DTOs

// UpdatePatientProfileRequest updates the caller's user row (name/email) and
// patient profile; the profile row is created lazily on first update.
type UpdatePatientProfileRequest struct {
	Name             string `json:"name" validate:"omitempty,min=2"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Address          string `json:"address" validate:"omitempty"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty"`
}

type UpdateDoctorProfileRequest struct {
	Name            string `json:"name" validate:"omitempty,min=2"`
	Email           string `json:"email" validate:"omitempty,email"`
	Specialization  string `json:"specialization" validate:"omitempty"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	Address         string `json:"address" validate:"omitempty"`
	LicenseNumber   string `json:"license_number" validate:"omitempty"`
	ExperienceYears *int   `json:"experience_years" validate:"omitempty,gte=0"`
	Bio             string `json:"bio" validate:"omitempty"`
}

// Response DTOs

type PatientProfileResponse struct {
	ID               uint   `json:"id"`
	UserID           uint   `json:"user_id"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Gender           string `json:"gender,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

type DoctorProfileResponse struct {
	ID              uint   `json:"id"`
	UserID          uint   `json:"user_id"`
	Specialization  string `json:"specialization,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	Bio             string `json:"bio,omitempty"`
}

// PatientProfileView is the GET /patients/profile payload: the user row plus
// the profile, which is null until first completed.
type PatientProfileView struct {
	User    *UserResponse           `json:"user"`
	Profile *PatientProfileResponse `json:"profile"`
}

type DoctorProfileView struct {
	User    *UserResponse          `json:"user"`
	Profile *DoctorProfileResponse `json:"profile"`
}
