package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorProfileMissing  = errors.New("doctor profile not found, complete your profile first")
	ErrMedicalRecordNotFound = errors.New("medical record not found")
)

type DoctorUsecase interface {
	GetProfile(ctx context.Context) (*dto.DoctorProfileView, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileView, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	UpdateMedicalRecord(ctx context.Context, id uint, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	patientRepo  repository.PatientProfileRepository
	recordRepo   repository.MedicalRecordRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

// GetProfile returns the logged-in doctor's user row and profile. The
// profile is null until the doctor completes it.
func (u *doctorUsecase) GetProfile(ctx context.Context) (*dto.DoctorProfileView, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile, err := u.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %d: %+v", userID, err)
		return nil, err
	}

	return &dto.DoctorProfileView{
		User:    converter.UserToResponse(user),
		Profile: converter.DoctorProfileToResponse(profile),
	}, nil
}

// UpdateProfile updates the doctor's user row (name/email) and profile in
// one transaction. The profile row is created on first update.
func (u *doctorUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileView, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %d: %+v", userID, err)
		return nil, err
	}

	profile, err := u.doctorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %d: %+v", userID, err)
		return nil, err
	}

	if profile == nil {
		profile = &entity.DoctorProfile{UserID: userID}
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.LicenseNumber != "" {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}

	if profile.ID == 0 {
		err = u.doctorRepo.Create(tx, profile)
	} else {
		err = u.doctorRepo.Update(tx, profile)
	}
	if err != nil {
		u.log.Warnf("Failed to save doctor profile for user %d: %+v", userID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "doctor_profile", profile.ID, nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.DoctorProfileView{
		User:    converter.UserToResponse(user),
		Profile: converter.DoctorProfileToResponse(profile),
	}, nil
}

// GetAllDoctors returns the public doctor directory. Doctors appear once
// they have completed their profile.
func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	details, err := u.doctorRepo.FindAllDetails(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorDetailsToResponses(details),
		Total:   len(details),
	}, nil
}

// CreateMedicalRecord writes a record for a patient, authored by the
// logged-in doctor. The appointment link is optional and not required to
// belong to this doctor; the foreign key backstops a dangling id.
func (u *doctorUsecase) CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %d: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileMissing
	}

	patient, err := u.patientRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	recordDate := req.RecordDate
	if recordDate == "" {
		recordDate = time.Now().Format("2006-01-02")
	}

	record := &entity.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      doctor.ID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
		RecordDate:    recordDate,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(tx, record); err != nil {
		if isForeignKeyError(err, "appointment") {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionRecordCreate, "medical_record", record.ID, record); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.recordRepo.FindDetailByID(db, record.ID)
	if err != nil || detail == nil {
		u.log.Warnf("Failed to reload medical record %d: %+v", record.ID, err)
		return nil, ErrMedicalRecordNotFound
	}

	u.log.Infof("Medical record created: id=%d, patient=%d, doctor=%d", record.ID, record.PatientID, record.DoctorID)
	return converter.MedicalRecordDetailToResponse(detail), nil
}

// UpdateMedicalRecord applies a partial update to a record the logged-in
// doctor authored. A record owned by another doctor reads as absent.
func (u *doctorUsecase) UpdateMedicalRecord(ctx context.Context, id uint, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %d: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileMissing
	}

	record, err := u.recordRepo.FindByIDForDoctor(db, id, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find medical record %d: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	updates := map[string]interface{}{}
	if req.Diagnosis != "" {
		updates["diagnosis"] = req.Diagnosis
	}
	if req.Prescription != "" {
		updates["prescription"] = req.Prescription
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.RecordDate != "" {
		updates["record_date"] = req.RecordDate
	}
	if len(updates) == 0 {
		return nil, ErrEmptyUpdate
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.recordRepo.UpdateFields(tx, id, updates); err != nil {
		u.log.Warnf("Failed to update medical record %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionRecordUpdate, "medical_record", id, record, updates); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.recordRepo.FindDetailByID(db, id)
	if err != nil || detail == nil {
		u.log.Warnf("Failed to reload medical record %d: %+v", id, err)
		return nil, ErrMedicalRecordNotFound
	}

	return converter.MedicalRecordDetailToResponse(detail), nil
}
