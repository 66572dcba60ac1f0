package usecase

import (
	"context"
	"sort"

	"go-clinic-api/internal/delivery/http/middleware"
	"go-clinic-api/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// actorContext builds a request context the way the auth middleware does.
func actorContext(userID uint, role string) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	return ctx
}

func uintPtr(v uint) *uint { return &v }

func duplicateKeyErr(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	nextID uint
	users  map[uint]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*entity.User{}}
}

func (r *fakeUserRepo) add(name, email, password, role string) *entity.User {
	r.nextID++
	user := &entity.User{ID: r.nextID, Name: name, Email: email, Password: password, Role: role}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return duplicateKeyErr("uq_users_email")
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	user := *u
	return &user, nil
}

func (r *fakeUserRepo) FindAll(db *gorm.DB, role string) ([]entity.User, error) {
	var users []entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return duplicateKeyErr("uq_users_email")
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *fakeUserRepo) CountByRole(db *gorm.DB, role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// fakePatientRepo is an in-memory PatientProfileRepository.
type fakePatientRepo struct {
	nextID   uint
	profiles map[uint]*entity.PatientProfile
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{profiles: map[uint]*entity.PatientProfile{}}
}

func (r *fakePatientRepo) add(userID uint) *entity.PatientProfile {
	r.nextID++
	profile := &entity.PatientProfile{ID: r.nextID, UserID: userID}
	r.profiles[profile.ID] = profile
	return profile
}

func (r *fakePatientRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	r.nextID++
	profile.ID = r.nextID
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakePatientRepo) FindByID(db *gorm.DB, id uint) (*entity.PatientProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	profile := *p
	return &profile, nil
}

func (r *fakePatientRepo) FindByUserID(db *gorm.DB, userID uint) (*entity.PatientProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			profile := *p
			return &profile, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

// fakeDoctorRepo is an in-memory DoctorProfileRepository.
type fakeDoctorRepo struct {
	nextID   uint
	profiles map[uint]*entity.DoctorProfile
	details  []entity.DoctorDetail
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{profiles: map[uint]*entity.DoctorProfile{}}
}

func (r *fakeDoctorRepo) add(userID uint) *entity.DoctorProfile {
	r.nextID++
	profile := &entity.DoctorProfile{ID: r.nextID, UserID: userID}
	r.profiles[profile.ID] = profile
	return profile
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	r.nextID++
	profile.ID = r.nextID
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakeDoctorRepo) FindByID(db *gorm.DB, id uint) (*entity.DoctorProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	profile := *p
	return &profile, nil
}

func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uint) (*entity.DoctorProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			profile := *p
			return &profile, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindAllDetails(db *gorm.DB) ([]entity.DoctorDetail, error) {
	return r.details, nil
}

func (r *fakeDoctorRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

// fakeAppointmentRepo is an in-memory AppointmentRepository with the same
// active-slot uniqueness behavior as the partial index.
type fakeAppointmentRepo struct {
	nextID        uint
	appointments  map[uint]*entity.Appointment
	patientUsers  map[uint]uint // patient profile id -> user id
	doctorUsers   map[uint]uint // doctor profile id -> user id
	failCreateDup bool          // simulate losing the insert race
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[uint]*entity.Appointment{},
		patientUsers: map[uint]uint{},
		doctorUsers:  map[uint]uint{},
	}
}

func (r *fakeAppointmentRepo) add(patientID, doctorID uint, date, timeOfDay string, status entity.AppointmentStatus) *entity.Appointment {
	r.nextID++
	a := &entity.Appointment{
		ID:              r.nextID,
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          status,
	}
	r.appointments[a.ID] = a
	return a
}

func (r *fakeAppointmentRepo) detailFor(a *entity.Appointment) *entity.AppointmentDetail {
	return &entity.AppointmentDetail{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		PatientUserID:   r.patientUsers[a.PatientID],
		DoctorUserID:    r.doctorUsers[a.DoctorID],
	}
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if r.failCreateDup {
		return duplicateKeyErr("uq_appointments_active_slot")
	}
	for _, a := range r.appointments {
		if a.DoctorID == appointment.DoctorID &&
			a.AppointmentDate == appointment.AppointmentDate &&
			a.AppointmentTime == appointment.AppointmentTime &&
			a.Status != entity.AppointmentStatusCancelled {
			return duplicateKeyErr("uq_appointments_active_slot")
		}
	}
	r.nextID++
	appointment.ID = r.nextID
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	appointment := *a
	return &appointment, nil
}

func (r *fakeAppointmentRepo) FindDetailByID(db *gorm.DB, id uint) (*entity.AppointmentDetail, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return r.detailFor(a), nil
}

func (r *fakeAppointmentRepo) FindDetails(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.AppointmentDetail, error) {
	var details []entity.AppointmentDetail
	for _, a := range r.appointments {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		details = append(details, *r.detailFor(a))
	}
	// Same ordering as the gorm implementation: newest slot first. ISO
	// strings sort chronologically.
	sort.Slice(details, func(i, j int) bool {
		if details[i].AppointmentDate != details[j].AppointmentDate {
			return details[i].AppointmentDate > details[j].AppointmentDate
		}
		return details[i].AppointmentTime > details[j].AppointmentTime
	})
	return details, nil
}

func (r *fakeAppointmentRepo) FindActiveSlot(db *gorm.DB, doctorID uint, date, timeOfDay string) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date &&
			a.AppointmentTime == timeOfDay && a.Status != entity.AppointmentStatusCancelled {
			appointment := *a
			return &appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error {
	a, ok := r.appointments[id]
	if !ok {
		return nil
	}
	if v, ok := updates["status"]; ok {
		a.Status = entity.AppointmentStatus(v.(string))
	}
	if v, ok := updates["appointment_date"]; ok {
		a.AppointmentDate = v.(string)
	}
	if v, ok := updates["appointment_time"]; ok {
		a.AppointmentTime = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		a.Notes = v.(string)
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

func (r *fakeAppointmentRepo) DeleteByPatientID(db *gorm.DB, patientID uint) error {
	for id, a := range r.appointments {
		if a.PatientID == patientID {
			delete(r.appointments, id)
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) DeleteByDoctorID(db *gorm.DB, doctorID uint) error {
	for id, a := range r.appointments {
		if a.DoctorID == doctorID {
			delete(r.appointments, id)
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.appointments)), nil
}

func (r *fakeAppointmentRepo) CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error) {
	var count int64
	for _, a := range r.appointments {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

// fakeMedicalRecordRepo is an in-memory MedicalRecordRepository.
type fakeMedicalRecordRepo struct {
	nextID  uint
	records map[uint]*entity.MedicalRecord
}

func newFakeMedicalRecordRepo() *fakeMedicalRecordRepo {
	return &fakeMedicalRecordRepo{records: map[uint]*entity.MedicalRecord{}}
}

func (r *fakeMedicalRecordRepo) add(patientID, doctorID uint, appointmentID *uint) *entity.MedicalRecord {
	r.nextID++
	record := &entity.MedicalRecord{
		ID:            r.nextID,
		PatientID:     patientID,
		DoctorID:      doctorID,
		AppointmentID: appointmentID,
		RecordDate:    "2026-01-15",
	}
	r.records[record.ID] = record
	return record
}

func (r *fakeMedicalRecordRepo) detailFor(record *entity.MedicalRecord) *entity.MedicalRecordDetail {
	return &entity.MedicalRecordDetail{
		ID:            record.ID,
		PatientID:     record.PatientID,
		DoctorID:      record.DoctorID,
		AppointmentID: record.AppointmentID,
		Diagnosis:     record.Diagnosis,
		Prescription:  record.Prescription,
		Notes:         record.Notes,
		RecordDate:    record.RecordDate,
	}
}

func (r *fakeMedicalRecordRepo) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	r.nextID++
	record.ID = r.nextID
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeMedicalRecordRepo) FindByIDForDoctor(db *gorm.DB, id, doctorID uint) (*entity.MedicalRecord, error) {
	record, ok := r.records[id]
	if !ok || record.DoctorID != doctorID {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *fakeMedicalRecordRepo) FindDetailByID(db *gorm.DB, id uint) (*entity.MedicalRecordDetail, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return r.detailFor(record), nil
}

func (r *fakeMedicalRecordRepo) FindDetailsByPatientID(db *gorm.DB, patientID uint) ([]entity.MedicalRecordDetail, error) {
	var details []entity.MedicalRecordDetail
	for _, record := range r.records {
		if record.PatientID == patientID {
			details = append(details, *r.detailFor(record))
		}
	}
	return details, nil
}

func (r *fakeMedicalRecordRepo) UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) error {
	record, ok := r.records[id]
	if !ok {
		return nil
	}
	if v, ok := updates["diagnosis"]; ok {
		record.Diagnosis = v.(string)
	}
	if v, ok := updates["prescription"]; ok {
		record.Prescription = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		record.Notes = v.(string)
	}
	if v, ok := updates["record_date"]; ok {
		record.RecordDate = v.(string)
	}
	return nil
}

func (r *fakeMedicalRecordRepo) UnlinkAppointment(db *gorm.DB, appointmentID uint) error {
	for _, record := range r.records {
		if record.AppointmentID != nil && *record.AppointmentID == appointmentID {
			record.AppointmentID = nil
		}
	}
	return nil
}

func (r *fakeMedicalRecordRepo) DeleteByPatientID(db *gorm.DB, patientID uint) error {
	for id, record := range r.records {
		if record.PatientID == patientID {
			delete(r.records, id)
		}
	}
	return nil
}

func (r *fakeMedicalRecordRepo) DeleteByDoctorID(db *gorm.DB, doctorID uint) error {
	for id, record := range r.records {
		if record.DoctorID == doctorID {
			delete(r.records, id)
		}
	}
	return nil
}

func (r *fakeMedicalRecordRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.records)), nil
}

// fakeAuditRepo records audit entries in memory.
type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}
