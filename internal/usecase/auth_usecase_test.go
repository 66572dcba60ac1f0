package usecase

import (
	"context"
	"errors"
	"testing"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/domain/entity"
	"go-clinic-api/internal/service"
	"go-clinic-api/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	usecase  AuthUsecase
	users    *fakeUserRepo
	patients *fakePatientRepo
	doctors  *fakeDoctorRepo
	audit    *fakeAuditRepo
}

// newAuthFixture wires the auth usecase without Redis; the covered paths
// fail or return before any token is stored.
func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()

	f := &authFixture{
		users:    newFakeUserRepo(),
		patients: newFakePatientRepo(),
		doctors:  newFakeDoctorRepo(),
		audit:    &fakeAuditRepo{},
	}
	jwtService := jwt.NewJWTService(testJWTConfig())
	f.usecase = NewAuthUsecase(db, log, f.users, f.patients, f.doctors,
		service.NewAuditService(db, log, f.audit), jwtService, nil)
	return f
}

func TestRegister(t *testing.T) {
	t.Run("DefaultsToPatient", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.Role != entity.RolePatient {
			t.Errorf("expected patient role, got %s", user.Role)
		}
		if user.PatientProfile != nil {
			t.Error("expected no profile without profile fields")
		}
		if len(f.audit.logs) != 1 || f.audit.logs[0].Action != entity.AuditActionUserRegister {
			t.Errorf("expected one user.register audit entry, got %v", f.audit.logs)
		}
	})

	t.Run("PatientWithProfileFields", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Password:    "secret123",
			Phone:       "555-0100",
			DateOfBirth: "1990-04-01",
			Gender:      "female",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.PatientProfile == nil {
			t.Fatal("expected patient profile to be created")
		}
		if user.PatientProfile.Phone != "555-0100" {
			t.Errorf("profile phone not stored, got %q", user.PatientProfile.Phone)
		}
	})

	t.Run("DoctorWithProfileFields", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
			Name:           "Dr Smith",
			Email:          "smith@example.com",
			Password:       "secret123",
			Role:           entity.RoleDoctor,
			Specialization: "cardiology",
			LicenseNumber:  "LIC-100",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.Role != entity.RoleDoctor {
			t.Errorf("expected doctor role, got %s", user.Role)
		}
		if user.DoctorProfile == nil || user.DoctorProfile.Specialization != "cardiology" {
			t.Errorf("expected doctor profile with specialization, got %+v", user.DoctorProfile)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.add("Jane Doe", "jane@example.com", "x", entity.RolePatient)

		_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
			Name:     "Other Jane",
			Email:    "jane@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("PasswordStoredHashed", func(t *testing.T) {
		f := newAuthFixture(t)

		resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		stored := f.users.users[resp.ID]
		if stored.Password == "secret123" {
			t.Fatal("password stored in plain text")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("UnknownEmail", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newAuthFixture(t)
		hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		f.users.add("Jane Doe", "jane@example.com", string(hash), entity.RolePatient)

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("WithPatientProfile", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.users.add("Jane Doe", "jane@example.com", "x", entity.RolePatient)
		f.patients.add(user.ID)

		resp, err := f.usecase.GetCurrentUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("get current user: %v", err)
		}
		if resp.PatientProfile == nil {
			t.Error("expected patient profile attached")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newAuthFixture(t)
		if _, err := f.usecase.GetCurrentUser(context.Background(), 404); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
