package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-clinic-api/internal/converter"
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/delivery/http/middleware"
	"go-clinic-api/internal/domain/entity"
	"go-clinic-api/internal/domain/repository"
	"go-clinic-api/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSelfDelete        = errors.New("cannot delete your own account")
	ErrInvalidRoleFilter = errors.New("invalid role filter")
)

const statsCacheKey = "admin:dashboard_stats"

type AdminUsecase interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ListUsers(ctx context.Context, role string) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	patientRepo     repository.PatientProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	recordRepo      repository.MedicalRecordRepository
	auditService    service.AuditService
	redisClient     *redis.Client
	statsTTL        time.Duration
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
	redisClient *redis.Client,
	statsTTL time.Duration,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
		auditService:    auditService,
		redisClient:     redisClient,
		statsTTL:        statsTTL,
	}
}

// GetDashboardStats returns aggregate counts for the admin dashboard.
// Results are cached in Redis for a short TTL; a Redis outage degrades to
// counting from the database.
func (u *adminUsecase) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	cached, err := u.redisClient.Get(ctx, statsCacheKey).Result()
	if err == nil {
		var stats dto.DashboardStatsResponse
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		u.log.Warnf("Failed to decode cached dashboard stats: %+v", err)
	} else if !errors.Is(err, redis.Nil) {
		u.log.Warnf("Failed to read dashboard stats cache: %+v", err)
	}

	db := u.db.WithContext(ctx)
	stats := &dto.DashboardStatsResponse{}

	if stats.TotalPatients, err = u.userRepo.CountByRole(db, entity.RolePatient); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if stats.TotalDoctors, err = u.userRepo.CountByRole(db, entity.RoleDoctor); err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	if stats.TotalAppointments, err = u.appointmentRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}
	if stats.PendingAppointments, err = u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusPending); err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, err
	}
	if stats.ApprovedAppointments, err = u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusApproved); err != nil {
		u.log.Warnf("Failed to count approved appointments: %+v", err)
		return nil, err
	}
	if stats.CompletedAppointments, err = u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, err
	}
	if stats.TotalMedicalRecords, err = u.recordRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count medical records: %+v", err)
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := u.redisClient.Set(ctx, statsCacheKey, encoded, u.statsTTL).Err(); err != nil {
			u.log.Warnf("Failed to cache dashboard stats: %+v", err)
		}
	}

	return stats, nil
}

// ListUsers returns all users, optionally filtered by role.
func (u *adminUsecase) ListUsers(ctx context.Context, role string) (*dto.UserListResponse, error) {
	if role != "" && !entity.IsValidRole(role) {
		return nil, ErrInvalidRoleFilter
	}

	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), role)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *adminUsecase) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.Role {
	case entity.RolePatient:
		if user.PatientProfile, err = u.patientRepo.FindByUserID(db, id); err != nil {
			return nil, err
		}
	case entity.RoleDoctor:
		if user.DoctorProfile, err = u.doctorRepo.FindByUserID(db, id); err != nil {
			return nil, err
		}
	}

	return converter.UserToResponse(user), nil
}

// UpdateUser patches a user's name and email. Role is immutable.
func (u *adminUsecase) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if req.Name == "" && req.Email == "" {
		return nil, ErrEmptyUpdate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
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
		u.log.Warnf("Failed to update user %d: %+v", id, err)
		return nil, err
	}

	actorID := actor.UserID
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionUserUpdate, "user", id, nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// DeleteUser removes a user together with their profile, appointments and
// medical records, all in one transaction. Admins cannot delete themselves.
func (u *adminUsecase) DeleteUser(ctx context.Context, id uint) error {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	if actor.UserID == id {
		return ErrSelfDelete
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch user.Role {
	case entity.RolePatient:
		profile, err := u.patientRepo.FindByUserID(tx, id)
		if err != nil {
			return err
		}
		if profile != nil {
			if err := u.recordRepo.DeleteByPatientID(tx, profile.ID); err != nil {
				u.log.Warnf("Failed to delete medical records for patient %d: %+v", profile.ID, err)
				return err
			}
			if err := u.appointmentRepo.DeleteByPatientID(tx, profile.ID); err != nil {
				u.log.Warnf("Failed to delete appointments for patient %d: %+v", profile.ID, err)
				return err
			}
		}
	case entity.RoleDoctor:
		profile, err := u.doctorRepo.FindByUserID(tx, id)
		if err != nil {
			return err
		}
		if profile != nil {
			if err := u.recordRepo.DeleteByDoctorID(tx, profile.ID); err != nil {
				u.log.Warnf("Failed to delete medical records for doctor %d: %+v", profile.ID, err)
				return err
			}
			if err := u.appointmentRepo.DeleteByDoctorID(tx, profile.ID); err != nil {
				u.log.Warnf("Failed to delete appointments for doctor %d: %+v", profile.ID, err)
				return err
			}
		}
	}

	// Profile rows cascade via the users foreign key
	rows, err := u.userRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	actorID := actor.UserID
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionUserDelete, "user", id, user); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("User deleted: id=%d, role=%s", id, user.Role)
	return nil
}
