package converter

import (
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
)

// DoctorDetailToResponse converts a DoctorDetail to the public directory DTO
func DoctorDetailToResponse(detail *entity.DoctorDetail) *dto.DoctorResponse {
	if detail == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              detail.ID,
		UserID:          detail.UserID,
		Name:            detail.Name,
		Email:           detail.Email,
		Specialization:  detail.Specialization,
		Phone:           detail.Phone,
		Address:         detail.Address,
		LicenseNumber:   detail.LicenseNumber,
		ExperienceYears: detail.ExperienceYears,
		Bio:             detail.Bio,
		CreatedAt:       detail.CreatedAt,
	}
}

// DoctorDetailsToResponses converts a slice of DoctorDetail to response DTOs
func DoctorDetailsToResponses(details []entity.DoctorDetail) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(details))
	for i, detail := range details {
		resp := DoctorDetailToResponse(&detail)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
