package converter

import (
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
)

// MedicalRecordDetailToResponse converts a MedicalRecordDetail to its DTO
func MedicalRecordDetailToResponse(detail *entity.MedicalRecordDetail) *dto.MedicalRecordResponse {
	if detail == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:              detail.ID,
		PatientID:       detail.PatientID,
		DoctorID:        detail.DoctorID,
		AppointmentID:   detail.AppointmentID,
		Diagnosis:       detail.Diagnosis,
		Prescription:    detail.Prescription,
		Notes:           detail.Notes,
		RecordDate:      detail.RecordDate,
		DoctorName:      detail.DoctorName,
		Specialization:  detail.Specialization,
		AppointmentDate: detail.AppointmentDate,
		AppointmentTime: detail.AppointmentTime,
		CreatedAt:       detail.CreatedAt,
		UpdatedAt:       detail.UpdatedAt,
	}
}

// MedicalRecordDetailsToResponses converts a slice of MedicalRecordDetail to response DTOs
func MedicalRecordDetailsToResponses(details []entity.MedicalRecordDetail) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(details))
	for i, detail := range details {
		resp := MedicalRecordDetailToResponse(&detail)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
