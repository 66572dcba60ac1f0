package entity

import "time"

// DoctorProfile represents doctor-specific profile data.
// Same lazy-creation and 1:1 ownership semantics as PatientProfile.
type DoctorProfile struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization  string    `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	Phone           string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address         string    `gorm:"type:text" json:"address,omitempty"`
	LicenseNumber   string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	ExperienceYears int       `gorm:"default:0" json:"experience_years,omitempty"`
	Bio             string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctors"
}

// DoctorDetail is a doctor row joined with the owning user, used by the
// public doctor directory.
type DoctorDetail struct {
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
