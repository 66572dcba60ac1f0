package usecase

import (
	"go-clinic-api/internal/domain/entity"
	"go-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

// scope is the data visibility of an actor, resolved from their role
// profile. Admins get an unrestricted scope (both ids nil, Restricted
// false); patients and doctors are pinned to their own profile id. A
// patient or doctor without a profile row yet gets a restricted scope
// with a nil id, which matches nothing.
type scope struct {
	Restricted bool
	PatientID  *uint
	DoctorID   *uint
}

// OwnsPatient reports whether the scope allows acting on the given patient.
func (s scope) OwnsPatient(patientID uint) bool {
	if !s.Restricted {
		return true
	}
	return s.PatientID != nil && *s.PatientID == patientID
}

// OwnsDoctor reports whether the scope allows acting on the given doctor.
func (s scope) OwnsDoctor(doctorID uint) bool {
	if !s.Restricted {
		return true
	}
	return s.DoctorID != nil && *s.DoctorID == doctorID
}

// resolveScope looks up the actor's profile row on every call rather than
// caching it in the token, so a freshly created profile is visible
// immediately.
func resolveScope(
	db *gorm.DB,
	actor entity.Actor,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
) (scope, error) {
	switch {
	case actor.IsPatient():
		profile, err := patientRepo.FindByUserID(db, actor.UserID)
		if err != nil {
			return scope{}, err
		}
		s := scope{Restricted: true}
		if profile != nil {
			s.PatientID = &profile.ID
		}
		return s, nil
	case actor.IsDoctor():
		profile, err := doctorRepo.FindByUserID(db, actor.UserID)
		if err != nil {
			return scope{}, err
		}
		s := scope{Restricted: true}
		if profile != nil {
			s.DoctorID = &profile.ID
		}
		return s, nil
	default:
		return scope{}, nil
	}
}
