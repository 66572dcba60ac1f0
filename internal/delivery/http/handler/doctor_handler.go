package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/usecase"
	"go-clinic-api/pkg/response"
	"go-clinic-api/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// GetAllDoctors is public: patients browse the directory before booking.
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.doctorUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.doctorUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.BadRequest(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *DoctorHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.doctorUsecase.CreateMedicalRecord(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorProfileMissing:
			response.NotFound(w, "Doctor profile not found, complete your profile first")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to create medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

func (h *DoctorHandler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.doctorUsecase.UpdateMedicalRecord(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorProfileMissing:
			response.NotFound(w, "Doctor profile not found, complete your profile first")
		case usecase.ErrMedicalRecordNotFound:
			response.NotFound(w, "Medical record not found")
		case usecase.ErrEmptyUpdate:
			response.BadRequest(w, "No fields to update")
		default:
			response.InternalServerError(w, "Failed to update medical record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}
