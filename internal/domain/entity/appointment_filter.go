package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
// Nil pointer fields mean "no constraint".
type AppointmentFilter struct {
	PatientID *uint
	DoctorID  *uint
	Status    string
}
