package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confdesk/internal/delivery/http/controllers"
)

// Controllers bundles the route handlers for NewRouter.
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Topics        *controllers.TopicController
	Papers        *controllers.PaperController
	Contact       *controllers.ContactController
}

// NewRouter initializes the HTTP router with all application routes.
// requireUser wraps the routes that need an authenticated user; object-level
// rules (staff, role, ownership) are enforced by the services.
func NewRouter(c Controllers, requireUser func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", requireUser(c.Users.Me))
	mux.HandleFunc("PATCH /users/me", requireUser(c.Users.UpdateMe))

	// Events (reads public, writes staff-gated in the service)
	mux.HandleFunc("GET /events", c.Events.List)
	mux.HandleFunc("POST /events", requireUser(c.Events.Create))
	mux.HandleFunc("GET /events/{eventID}", c.Events.Get)
	mux.HandleFunc("PATCH /events/{eventID}", requireUser(c.Events.Update))
	mux.HandleFunc("PUT /events/{eventID}", requireUser(c.Events.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireUser(c.Events.Delete))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register", requireUser(c.Registrations.Register))
	mux.HandleFunc("DELETE /events/{eventID}/register", requireUser(c.Registrations.Cancel))
	mux.HandleFunc("GET /events/{eventID}/my-registration", requireUser(c.Registrations.MyRegistration))

	// Topics
	mux.HandleFunc("GET /topics", c.Topics.List)
	mux.HandleFunc("PATCH /topics/{topicID}", requireUser(c.Topics.Rename))
	mux.HandleFunc("DELETE /topics/{topicID}", requireUser(c.Topics.Delete))

	// Papers
	mux.HandleFunc("GET /events/{eventID}/papers", c.Papers.ListByEvent)
	mux.HandleFunc("POST /events/{eventID}/papers", requireUser(c.Papers.Submit))
	mux.HandleFunc("GET /events/{eventID}/papers/{paperID}", c.Papers.Get)
	mux.HandleFunc("PATCH /events/{eventID}/papers/{paperID}/set-status", requireUser(c.Papers.SetStatus))
	mux.HandleFunc("POST /events/{eventID}/papers/{paperID}/upload-pdf", requireUser(c.Papers.UploadPDF))

	// Contact
	mux.HandleFunc("POST /contact", requireUser(c.Contact.Create))
	mux.HandleFunc("GET /contact", requireUser(c.Contact.List))
	mux.HandleFunc("GET /contact/{messageID}", requireUser(c.Contact.Get))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
