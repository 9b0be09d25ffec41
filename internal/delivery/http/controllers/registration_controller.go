package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// PublicEventResponse is the event as shown on the public registration page.
// It deliberately omits internal identifiers.
type PublicEventResponse struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// PublicEventSuccessResponse is the success response envelope for GET /register/{token} (200).
type PublicEventSuccessResponse struct {
	Data  PublicEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RegisterRequest is the request body for POST /register/{token}.
type RegisterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
}

// Validate implements Validator. Returns error messages for required fields.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.College) == "" {
		errs = append(errs, "college is required")
	}
	return errs
}

// RegistrationConfirmation is the response body for a successful POST /register/{token}.
type RegistrationConfirmation struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	College      string    `json:"college"`
	RegisteredAt time.Time `json:"registered_at"`
	EventName    string    `json:"event_name"`
}

// RegisterSuccessResponse is the success response envelope for POST /register/{token} (201).
type RegisterSuccessResponse struct {
	Data  RegistrationConfirmation `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEvent godoc
// @Summary Show the event behind a registration link
// @Description Resolves a registration token to the event it belongs to. Public, no authentication. Internal identifiers are not exposed.
// @Tags register
// @Produce json
// @Param token path string true "Registration token"
// @Success 200 {object} controllers.PublicEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /register/{token} [get]
func (c *RegistrationController) GetEvent(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	event, err := c.Service.ResolveToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invalid registration link")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublicEventResponse{
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date,
	})
}

// Register godoc
// @Summary Register for an event
// @Description Registers a participant for the event behind the token. Public, no authentication. Each email can register once per event.
// @Tags register
// @Accept json
// @Produce json
// @Param token path string true "Registration token"
// @Param body body RegisterRequest true "Participant data"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the registration confirmation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown token)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /register/{token} [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, event, err := c.Service.Register(r.Context(), token, req.Name, req.Email, req.College)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invalid registration link")
			return
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(ve.Fields, "; "))
			return
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "this email is already registered for the event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegistrationConfirmation{
		Name:         participant.Name,
		Email:        participant.Email,
		College:      participant.College,
		RegisteredAt: participant.RegisteredAt,
		EventName:    event.Name,
	})
}
