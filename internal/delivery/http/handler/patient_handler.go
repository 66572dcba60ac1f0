package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/usecase"
	"go-clinic-api/pkg/response"
	"go-clinic-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.patientUsecase.GetProfile(r.Context())
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

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientUsecase.UpdateProfile(r.Context(), &req)
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

func (h *PatientHandler) GetMedicalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.patientUsecase.GetMedicalRecords(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found, complete your profile first")
		default:
			response.InternalServerError(w, "Failed to get medical records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}
