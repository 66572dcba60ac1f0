package converter

import (
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
)

// AppointmentDetailToResponse converts an AppointmentDetail to AppointmentResponse DTO
func AppointmentDetailToResponse(detail *entity.AppointmentDetail) *dto.AppointmentResponse {
	if detail == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              detail.ID,
		PatientID:       detail.PatientID,
		DoctorID:        detail.DoctorID,
		AppointmentDate: detail.AppointmentDate,
		AppointmentTime: detail.AppointmentTime,
		Status:          detail.Status,
		Reason:          detail.Reason,
		Notes:           detail.Notes,
		PatientUserID:   detail.PatientUserID,
		PatientName:     detail.PatientName,
		PatientEmail:    detail.PatientEmail,
		DoctorUserID:    detail.DoctorUserID,
		DoctorName:      detail.DoctorName,
		DoctorEmail:     detail.DoctorEmail,
		Specialization:  detail.Specialization,
		CreatedAt:       detail.CreatedAt,
		UpdatedAt:       detail.UpdatedAt,
	}
}

// AppointmentDetailsToResponses converts a slice of AppointmentDetail to response DTOs
func AppointmentDetailsToResponses(details []entity.AppointmentDetail) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(details))
	for i, detail := range details {
		resp := AppointmentDetailToResponse(&detail)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
