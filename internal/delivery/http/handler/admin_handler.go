package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/usecase"
	"go-clinic-api/pkg/response"
	"go-clinic-api/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetDashboardStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	users, err := h.adminUsecase.ListUsers(r.Context(), role)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRoleFilter:
			response.BadRequest(w, "Invalid role filter")
		default:
			response.InternalServerError(w, "Failed to list users")
		}
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.adminUsecase.GetUser(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.UpdateUser(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.BadRequest(w, "Email already exists")
		case usecase.ErrEmptyUpdate:
			response.BadRequest(w, "No fields to update")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.adminUsecase.DeleteUser(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrSelfDelete:
			response.BadRequest(w, "Cannot delete your own account")
		default:
			response.InternalServerError(w, "Failed to delete user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
