package http

import (
	"net/http"

	"go-clinic-api/internal/delivery/http/handler"
	"go-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		adminHandler:       adminHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public doctor directory
	api.HandleFunc("/doctors/all", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)

	// Appointment routes (any authenticated role; the usecase scopes data)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointmentByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)

	appointmentsAdmin := api.PathPrefix("/appointments").Subrouter()
	appointmentsAdmin.Use(r.authMiddleware.Authenticate)
	appointmentsAdmin.Use(middleware.RequireAdmin)
	appointmentsAdmin.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Patient routes (patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patients.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patients.HandleFunc("/medical-records", r.patientHandler.GetMedicalRecords).Methods(http.MethodGet)

	// Doctor routes (doctor only)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireDoctor)
	doctors.HandleFunc("/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctors.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctors.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	doctors.HandleFunc("/medical-records", r.doctorHandler.CreateMedicalRecord).Methods(http.MethodPost)
	doctors.HandleFunc("/medical-records/{id}", r.doctorHandler.UpdateMedicalRecord).Methods(http.MethodPut)

	// Admin routes (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/dashboard/stats", r.adminHandler.GetDashboardStats).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.adminHandler.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.adminHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.adminHandler.DeleteUser).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
