package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-clinic-api/internal/converter"
	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
	"go-clinic-api/internal/domain/repository"
	"go-clinic-api/internal/service"
	"go-clinic-api/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

// Register creates a user and, when profile fields are supplied, the role
// profile row in the same transaction. Role defaults to patient; admins are
// seeded out of band and cannot self-register.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = entity.RolePatient
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	switch {
	case role == entity.RolePatient && hasPatientFields(req):
		profile := &entity.PatientProfile{
			UserID:           user.ID,
			Phone:            req.Phone,
			Address:          req.Address,
			DateOfBirth:      req.DateOfBirth,
			Gender:           req.Gender,
			EmergencyContact: req.EmergencyContact,
		}
		if err := u.patientRepo.Create(tx, profile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return nil, err
		}
		user.PatientProfile = profile
	case role == entity.RoleDoctor && hasDoctorFields(req):
		profile := &entity.DoctorProfile{
			UserID:          user.ID,
			Specialization:  req.Specialization,
			Phone:           req.Phone,
			Address:         req.Address,
			LicenseNumber:   req.LicenseNumber,
			ExperienceYears: req.ExperienceYears,
			Bio:             req.Bio,
		}
		if err := u.doctorRepo.Create(tx, profile); err != nil {
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return nil, err
		}
		user.DoctorProfile = profile
	}

	userID := user.ID
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionUserRegister, "user", user.ID, user); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("User registered: id=%d, role=%s", user.ID, role)
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	// Store tokens in Redis
	accessKey := fmt.Sprintf("access_token:%d:%s", user.ID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%d:%s", user.ID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		TokenResponse: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		},
		User: converter.UserToResponse(user),
	}, nil
}

// Logout revokes the access token and every refresh token issued to the
// same user, so a stolen refresh token dies with the session.
func (u *authUsecase) Logout(ctx context.Context, accessTokenID string) error {
	accessPattern := fmt.Sprintf("access_token:*:%s", accessTokenID)

	accessKeys, err := u.redisClient.Keys(ctx, accessPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to get access token keys: %+v", err)
		return err
	}

	for _, key := range accessKeys {
		// access_token:<user_id>:<token_id>
		parts := strings.Split(key, ":")
		if len(parts) == 3 {
			refreshPattern := fmt.Sprintf("refresh_token:%s:*", parts[1])
			refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
			if err != nil {
				u.log.Warnf("Failed to get refresh token keys: %+v", err)
				return err
			}
			if len(refreshKeys) > 0 {
				if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
					u.log.Warnf("Failed to delete refresh tokens: %+v", err)
					return err
				}
			}
		}
	}

	if len(accessKeys) > 0 {
		if err := u.redisClient.Del(ctx, accessKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete access token: %+v", err)
			return err
		}
	}

	return nil
}

// RefreshToken rotates a refresh token: the presented token is consumed and
// a fresh access/refresh pair is issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%d:%s", claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKeyNew := fmt.Sprintf("access_token:%d:%s", claims.UserID, accessTokenID)
	refreshKeyNew := fmt.Sprintf("refresh_token:%d:%s", claims.UserID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKeyNew, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKeyNew, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.Role {
	case entity.RolePatient:
		profile, err := u.patientRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		user.PatientProfile = profile
	case entity.RoleDoctor:
		profile, err := u.doctorRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		user.DoctorProfile = profile
	}

	return converter.UserToResponse(user), nil
}

func hasPatientFields(req *dto.RegisterRequest) bool {
	return req.Phone != "" || req.Address != "" || req.DateOfBirth != "" ||
		req.Gender != "" || req.EmergencyContact != ""
}

func hasDoctorFields(req *dto.RegisterRequest) bool {
	return req.Specialization != "" || req.Phone != "" || req.Address != "" ||
		req.LicenseNumber != "" || req.ExperienceYears > 0 || req.Bio != ""
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
