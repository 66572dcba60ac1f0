package entity

import "time"

// PatientProfile represents patient-specific profile data.
// Created lazily: either at registration or on the first profile update.
type PatientProfile struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone            string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	DateOfBirth      string    `gorm:"type:varchar(10)" json:"date_of_birth,omitempty"`
	Gender           string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	EmergencyContact string    `gorm:"type:varchar(255)" json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patients"
}
