package converter

import (
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	// Include role profile if preloaded
	if user.PatientProfile != nil {
		response.PatientProfile = PatientProfileToResponse(user.PatientProfile)
	}
	if user.DoctorProfile != nil {
		response.DoctorProfile = DoctorProfileToResponse(user.DoctorProfile)
	}

	return response
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp := UserToResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PatientProfileToResponse converts a PatientProfile entity to its DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		ID:               profile.ID,
		UserID:           profile.UserID,
		Phone:            profile.Phone,
		Address:          profile.Address,
		DateOfBirth:      profile.DateOfBirth,
		Gender:           profile.Gender,
		EmergencyContact: profile.EmergencyContact,
	}
}

// DoctorProfileToResponse converts a DoctorProfile entity to its DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Specialization:  profile.Specialization,
		Phone:           profile.Phone,
		Address:         profile.Address,
		LicenseNumber:   profile.LicenseNumber,
		ExperienceYears: profile.ExperienceYears,
		Bio:             profile.Bio,
	}
}
