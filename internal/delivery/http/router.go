package http

import (
	"net/http"

	"go-hospital-management/internal/delivery/http/handler"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every page handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Dashboard     *handler.DashboardHandler
	Doctor        *handler.DoctorHandler
	Patient       *handler.PatientHandler
	Appointment   *handler.AppointmentHandler
	MedicalRecord *handler.MedicalRecordHandler
	AuditLog      *handler.AuditLogHandler
	Health        *handler.HealthHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	sessionMiddleware *middleware.SessionMiddleware
	authMiddleware    *middleware.AuthMiddleware
	loginLimiter      *middleware.LoginRateLimiter
	view              *view.Renderer
	metrics           *metrics.Metrics
	log               *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	sessionMiddleware *middleware.SessionMiddleware,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
	view *view.Renderer,
	metrics *metrics.Metrics,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		sessionMiddleware: sessionMiddleware,
		authMiddleware:    authMiddleware,
		loginLimiter:      loginLimiter,
		view:              view,
		metrics:           metrics,
		log:               log,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.Recovery(r.log))
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(middleware.Metrics(r.metrics))

	// Operational endpoints, no session
	r.router.HandleFunc("/health", r.handlers.Health.Health).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	web := r.router.PathPrefix("/").Subrouter()
	web.Use(r.sessionMiddleware.Load)

	// Public pages
	web.HandleFunc("/", r.handlers.Auth.LoginPage).Methods(http.MethodGet)
	web.Handle("/", r.loginLimiter.Limit(http.HandlerFunc(r.handlers.Auth.Login))).Methods(http.MethodPost)
	web.HandleFunc("/logout", r.handlers.Auth.Logout).Methods(http.MethodGet)
	web.HandleFunc("/register", r.handlers.Auth.RegisterPage).Methods(http.MethodGet)
	web.HandleFunc("/register", r.handlers.Auth.Register).Methods(http.MethodPost)

	// Any logged-in user
	authed := web.NewRoute().Subrouter()
	authed.Use(r.authMiddleware.RequireLogin)
	authed.HandleFunc("/index", r.handlers.Dashboard.Index).Methods(http.MethodGet)

	// Admin pages
	admin := web.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.RequireLogin)
	admin.Use(r.authMiddleware.RequireAdmin)
	admin.HandleFunc("/index", r.handlers.Dashboard.AdminDashboard).Methods(http.MethodGet)

	admin.HandleFunc("/doctors", r.handlers.Doctor.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctor/new", r.handlers.Doctor.NewDoctorPage).Methods(http.MethodGet)
	admin.HandleFunc("/doctor/new", r.handlers.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctor/edit/{id}", r.handlers.Doctor.EditDoctorPage).Methods(http.MethodGet)
	admin.HandleFunc("/doctor/edit/{id}", r.handlers.Doctor.UpdateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctor/delete/{id}", r.handlers.Doctor.DeleteDoctor).Methods(http.MethodGet)

	admin.HandleFunc("/patients", r.handlers.Patient.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patient/edit/{id}", r.handlers.Patient.EditPatientPage).Methods(http.MethodGet)
	admin.HandleFunc("/patient/edit/{id}", r.handlers.Patient.UpdatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patient/delete/{id}", r.handlers.Patient.DeletePatient).Methods(http.MethodGet)

	admin.HandleFunc("/audit", r.handlers.AuditLog.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/clear_audit_log", r.handlers.AuditLog.ClearAuditLogPage).Methods(http.MethodGet)
	admin.HandleFunc("/clear_audit_log", r.handlers.AuditLog.ClearAuditLogs).Methods(http.MethodPost)

	// Doctor pages
	doctor := web.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.RequireLogin)
	doctor.Use(r.authMiddleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.handlers.Appointment.ListDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/records", r.handlers.MedicalRecord.ListDoctorRecords).Methods(http.MethodGet)
	doctor.HandleFunc("/record/edit/{id}", r.handlers.MedicalRecord.EditRecordPage).Methods(http.MethodGet)
	doctor.HandleFunc("/record/edit/{id}", r.handlers.MedicalRecord.UpdateRecord).Methods(http.MethodPost)
	doctor.HandleFunc("/record/{appointment_id}", r.handlers.MedicalRecord.NewRecordPage).Methods(http.MethodGet)
	doctor.HandleFunc("/record/{appointment_id}", r.handlers.MedicalRecord.AddRecord).Methods(http.MethodPost)
	doctor.HandleFunc("/patients", r.handlers.Patient.SearchPatients).Methods(http.MethodGet, http.MethodPost)
	doctor.HandleFunc("/patient/{id}", r.handlers.Patient.GetPatientDetail).Methods(http.MethodGet)

	// Patient pages
	patient := web.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.RequireLogin)
	patient.Use(r.authMiddleware.RequirePatient)
	patient.HandleFunc("/index", r.handlers.Patient.ProfilePage).Methods(http.MethodGet)
	patient.HandleFunc("/index", r.handlers.Patient.UpdateProfile).Methods(http.MethodPost)
	patient.HandleFunc("/book", r.handlers.Appointment.BookPage).Methods(http.MethodGet)
	patient.HandleFunc("/book", r.handlers.Appointment.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.handlers.Appointment.ListPatientAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointment/edit/{id}", r.handlers.Appointment.EditAppointmentPage).Methods(http.MethodGet)
	patient.HandleFunc("/appointment/edit/{id}", r.handlers.Appointment.UpdateAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointment/cancel/{id}", r.handlers.Appointment.CancelAppointment).Methods(http.MethodGet)
	patient.HandleFunc("/records", r.handlers.MedicalRecord.ListPatientRecords).Methods(http.MethodGet)

	r.router.NotFoundHandler = r.sessionMiddleware.Load(http.HandlerFunc(r.notFound))

	return r.router
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	r.view.Error(w, req, http.StatusNotFound, "Page not found")
}
