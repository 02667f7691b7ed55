package handler

import (
	"errors"
	"net/http"
	"strings"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/metrics"
	"go-hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	sessions    *session.Manager
	validator   *validator.CustomValidator
	view        *view.Renderer
	metrics     *metrics.Metrics
	log         *logrus.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	sessions *session.Manager,
	validator *validator.CustomValidator,
	view *view.Renderer,
	metrics *metrics.Metrics,
	log *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		sessions:    sessions,
		validator:   validator,
		view:        view,
		metrics:     metrics,
		log:         log,
	}
}

// LoginPage shows the login form, or sends a logged-in user to their home page.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAuthenticated() {
		h.view.Redirect(w, r, "/index")
		return
	}
	h.view.Render(w, r, http.StatusOK, "login", map[string]any{"Username": ""})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeForm(r, &req); err != nil {
		h.view.Error(w, r, http.StatusBadRequest, formErrorMessage(err))
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	identity, err := h.authenticate(r, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
			addFlash(r, session.FlashDanger, "Invalid credentials")
			h.view.Render(w, r, http.StatusUnauthorized, "login", map[string]any{"Username": req.Username})
		default:
			h.metrics.LoginAttempts.WithLabelValues("error").Inc()
			h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s := session.FromContext(r.Context())
	if err := h.sessions.Rotate(r.Context(), s); err != nil {
		h.log.Warnf("Failed to rotate session: %+v", err)
	}
	s.SetIdentity(*identity)
	h.metrics.LoginAttempts.WithLabelValues("success").Inc()

	h.view.Redirect(w, r, "/index")
}

// authenticate treats blank fields the same way as a wrong password.
func (h *AuthHandler) authenticate(r *http.Request, req *dto.LoginRequest) (*entity.Identity, error) {
	if err := h.validator.Validate(req); err != nil {
		return nil, usecase.ErrInvalidCredentials
	}
	return h.authUsecase.Login(r.Context(), req)
}

// Logout drops the server-side session whether or not anyone was logged in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	fresh, err := h.sessions.Destroy(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.log.Warnf("Failed to destroy session: %+v", err)
	}
	fresh.AddFlash(session.FlashInfo, "Logged out successfully")

	r = r.WithContext(session.NewContext(r.Context(), fresh))
	h.view.Redirect(w, r, "/")
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "register", map[string]any{"Form": &dto.RegisterPatientRequest{}})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := decodePatientForm(r, &req); err != nil {
		h.renderRegister(w, r, &req, formErrorMessage(err))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Normalize()

	if err := h.validator.Validate(&req); err != nil {
		h.renderRegister(w, r, &req, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.authUsecase.RegisterPatient(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			h.renderRegister(w, r, &req, "Username already exists")
		default:
			h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Patient registered successfully")
	h.view.Redirect(w, r, "/")
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, req *dto.RegisterPatientRequest, message string) {
	addFlash(r, session.FlashDanger, message)
	h.view.Render(w, r, http.StatusUnprocessableEntity, "register", map[string]any{"Form": req})
}
