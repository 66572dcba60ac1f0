package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/usecase"
	"go-clinic-api/pkg/response"
	"go-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotTaken:
			response.BadRequest(w, "Doctor already has an appointment at this time")
		case usecase.ErrPatientIDRequired:
			response.BadRequest(w, "patient_id is required")
		case usecase.ErrPatientProfileMissing:
			response.NotFound(w, "Patient profile not found, complete your profile first")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := &dto.ListAppointmentsQuery{
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(w, "Invalid patient_id filter")
			return
		}
		patientID := uint(id)
		query.PatientID = &patientID
	}
	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(w, "Invalid doctor_id filter")
			return
		}
		doctorID := uint(id)
		query.DoctorID = &doctorID
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatusFilter:
			response.BadRequest(w, "Invalid status filter")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointmentByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAccess:
			response.Forbidden(w, "Appointment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAccess:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrPatientCancelOnly:
			response.Forbidden(w, "Patients can only cancel their appointments")
		case usecase.ErrEmptyUpdate:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrSlotTaken:
			response.BadRequest(w, "Doctor already has an appointment at this time")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAccess:
			response.Forbidden(w, "You don't have permission to delete appointments")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// parseIDParam reads the {id} route variable as an unsigned integer.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid ID", nil)
		return 0, false
	}
	return uint(id), true
}
