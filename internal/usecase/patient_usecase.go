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

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	GetProfile(ctx context.Context) (*dto.PatientProfileView, error)
	UpdateProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileView, error)
	GetMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientProfileRepository
	recordRepo   repository.MedicalRecordRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

// GetProfile returns the logged-in patient's user row and profile. The
// profile is null until first completed.
func (u *patientUsecase) GetProfile(ctx context.Context) (*dto.PatientProfileView, error) {
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

	profile, err := u.patientRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %d: %+v", userID, err)
		return nil, err
	}

	return &dto.PatientProfileView{
		User:    converter.UserToResponse(user),
		Profile: converter.PatientProfileToResponse(profile),
	}, nil
}

// UpdateProfile updates the patient's user row (name/email) and profile in
// one transaction. The profile row is created on first update.
func (u *patientUsecase) UpdateProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileView, error) {
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

	profile, err := u.patientRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %d: %+v", userID, err)
		return nil, err
	}

	if profile == nil {
		profile = &entity.PatientProfile{UserID: userID}
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.DateOfBirth != "" {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.EmergencyContact != "" {
		profile.EmergencyContact = req.EmergencyContact
	}

	if profile.ID == 0 {
		err = u.patientRepo.Create(tx, profile)
	} else {
		err = u.patientRepo.Update(tx, profile)
	}
	if err != nil {
		u.log.Warnf("Failed to save patient profile for user %d: %+v", userID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", profile.ID, nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.PatientProfileView{
		User:    converter.UserToResponse(user),
		Profile: converter.PatientProfileToResponse(profile),
	}, nil
}

// GetMedicalRecords returns the logged-in patient's medical history,
// newest record first.
func (u *patientUsecase) GetMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %d: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	details, err := u.recordRepo.FindDetailsByPatientID(db, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for patient %d: %+v", profile.ID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordDetailsToResponses(details),
		Total:   len(details),
	}, nil
}
