package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// NewRouter wires every route of the API. Organizer endpoints sit behind
// bearer-token auth; the /register routes stay public so participants can
// open a shared link without an account.
func NewRouter(
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("POST /auth/login", authController.Login)

	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.Dashboard))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/participants", requireAuth(eventController.ListParticipants))
	mux.HandleFunc("DELETE /events/{eventID}/participants/{participantID}", requireAuth(eventController.RemoveParticipant))

	mux.HandleFunc("GET /register/{token}", registrationController.GetEvent)
	mux.HandleFunc("POST /register/{token}", registrationController.Register)

	mux.HandleFunc("GET /healthz", healthz)

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
