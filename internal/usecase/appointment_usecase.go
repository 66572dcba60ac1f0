package usecase

import (
	"context"
	"errors"

	"go-clinic-api/internal/converter"
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/delivery/http/middleware"
	"go-clinic-api/internal/domain/entity"
	"go-clinic-api/internal/domain/repository"
	"go-clinic-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentAccess     = errors.New("appointment does not belong to you")
	ErrSlotTaken             = errors.New("doctor already has an appointment at this time")
	ErrPatientIDRequired     = errors.New("patient_id is required")
	ErrPatientProfileMissing = errors.New("patient profile not found, complete your profile first")
	ErrPatientCancelOnly     = errors.New("patients can only cancel their appointments")
	ErrEmptyUpdate           = errors.New("no fields to update")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	GetAppointmentByID(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uint) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	recordRepo      repository.MedicalRecordRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		recordRepo:      recordRepo,
		auditService:    auditService,
	}
}

// CreateAppointment books a slot with the given doctor.
//
// Patients always book for themselves; their patient_id field is ignored.
// Doctors and admins book on behalf of a patient and must supply patient_id.
// The pre-insert slot check gives a friendly error on the common path; the
// partial unique index catches the concurrent race and is mapped to the
// same ErrSlotTaken.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	// Resolve the patient the appointment is for
	var patientID uint
	if actor.IsPatient() {
		profile, err := u.patientRepo.FindByUserID(db, actor.UserID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile for user %d: %+v", actor.UserID, err)
			return nil, err
		}
		if profile == nil {
			return nil, ErrPatientProfileMissing
		}
		patientID = profile.ID
	} else {
		if req.PatientID == nil {
			return nil, ErrPatientIDRequired
		}
		profile, err := u.patientRepo.FindByID(db, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %d: %+v", *req.PatientID, err)
			return nil, err
		}
		if profile == nil {
			return nil, ErrPatientNotFound
		}
		patientID = profile.ID
	}

	// Validate the doctor exists
	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Friendly-path slot check
	existing, err := u.appointmentRepo.FindActiveSlot(db, req.DoctorID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          entity.AppointmentStatusPending,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	actorID := actor.UserID
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.appointmentRepo.FindDetailByID(db, appointment.ID)
	if err != nil || detail == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return nil, ErrAppointmentNotFound
	}

	u.log.Infof("Appointment created: id=%d, doctor=%d, slot=%s %s", appointment.ID, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime)
	return converter.AppointmentDetailToResponse(detail), nil
}

// ListAppointments returns appointments visible to the caller, newest slot
// first. Patients and doctors are pinned to their own profile; the
// patient_id and doctor_id query filters are honored for admins only. A
// patient or doctor without a profile row sees an empty list.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if query.Status != "" && !entity.IsValidAppointmentStatus(query.Status) {
		return nil, ErrInvalidStatusFilter
	}

	db := u.db.WithContext(ctx)

	s, err := resolveScope(db, actor, u.patientRepo, u.doctorRepo)
	if err != nil {
		u.log.Warnf("Failed to resolve scope for user %d: %+v", actor.UserID, err)
		return nil, err
	}

	filter := &entity.AppointmentFilter{Status: query.Status}
	if s.Restricted {
		if s.PatientID == nil && s.DoctorID == nil {
			return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 0}, nil
		}
		filter.PatientID = s.PatientID
		filter.DoctorID = s.DoctorID
	} else {
		filter.PatientID = query.PatientID
		filter.DoctorID = query.DoctorID
	}

	details, err := u.appointmentRepo.FindDetails(db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentDetailsToResponses(details),
		Total:        len(details),
	}, nil
}

// GetAppointmentByID returns one appointment. Ownership is checked against
// the joined user ids, so it works even before the caller has completed
// their profile.
func (u *appointmentUsecase) GetAppointmentByID(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	detail, err := u.appointmentRepo.FindDetailByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrAppointmentNotFound
	}

	if actor.IsPatient() && detail.PatientUserID != actor.UserID {
		return nil, ErrAppointmentAccess
	}
	if actor.IsDoctor() && detail.DoctorUserID != actor.UserID {
		return nil, ErrAppointmentAccess
	}

	return converter.AppointmentDetailToResponse(detail), nil
}

// UpdateAppointment applies a partial update.
//
// Patients may only cancel their own appointments: any field other than
// {status: cancelled} in the patch is rejected. Doctors may patch status,
// slot and notes on their own appointments. Admins may patch anything.
// Moving an appointment to an occupied slot fails like a double booking.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	s, err := resolveScope(db, actor, u.patientRepo, u.doctorRepo)
	if err != nil {
		u.log.Warnf("Failed to resolve scope for user %d: %+v", actor.UserID, err)
		return nil, err
	}

	if actor.IsPatient() && !s.OwnsPatient(appointment.PatientID) {
		return nil, ErrAppointmentAccess
	}
	if actor.IsDoctor() && !s.OwnsDoctor(appointment.DoctorID) {
		return nil, ErrAppointmentAccess
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AppointmentDate != "" {
		updates["appointment_date"] = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		updates["appointment_time"] = req.AppointmentTime
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return nil, ErrEmptyUpdate
	}

	// The cancel-only rule applies to whatever the patch actually carries;
	// an empty patch was already rejected above.
	if actor.IsPatient() {
		if req.Status != string(entity.AppointmentStatusCancelled) ||
			req.AppointmentDate != "" || req.AppointmentTime != "" || req.Notes != nil {
			return nil, ErrPatientCancelOnly
		}
	}

	// When the slot moves, make sure the target slot is free
	newDate := appointment.AppointmentDate
	newTime := appointment.AppointmentTime
	if req.AppointmentDate != "" {
		newDate = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		newTime = req.AppointmentTime
	}
	if newDate != appointment.AppointmentDate || newTime != appointment.AppointmentTime {
		occupied, err := u.appointmentRepo.FindActiveSlot(db, appointment.DoctorID, newDate, newTime)
		if err != nil {
			u.log.Warnf("Failed to check slot availability: %+v", err)
			return nil, err
		}
		if occupied != nil && occupied.ID != appointment.ID {
			return nil, ErrSlotTaken
		}
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.UpdateFields(tx, id, updates); err != nil {
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	actorID := actor.UserID
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate, "appointment", id, appointment, updates); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.appointmentRepo.FindDetailByID(db, id)
	if err != nil || detail == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", id, err)
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentDetailToResponse(detail), nil
}

// DeleteAppointment permanently removes an appointment. Admin only; the
// router guards the route, this check covers direct callers. Medical
// records referencing the appointment are kept and unlinked first.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uint) error {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	if !actor.IsAdmin() {
		return ErrAppointmentAccess
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.recordRepo.UnlinkAppointment(tx, id); err != nil {
		u.log.Warnf("Failed to unlink medical records for appointment %d: %+v", id, err)
		return err
	}

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	actorID := actor.UserID
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionAppointmentDelete, "appointment", id, appointment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%d", id)
	return nil
}
