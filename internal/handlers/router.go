package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/middleware"
)

// NewRouter assembles the REST surface. Reads only need a valid token;
// mutating routes additionally require a dispatcher or admin role.
func NewRouter(manager TaskService, lookup db.LookupCollection, authMW *middleware.AuthMiddleware, rateMW *middleware.RateLimitMiddleware) *chi.Mux {
	taskHandler := NewTaskHandler(manager)
	passengerHandler := NewPassengerHandler(manager)
	employeeHandler := NewEmployeeHandler(lookup)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(rateMW.RateLimit(120, 60))
	r.Use(authMW.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/fleet-tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireMutation)
			r.Post("/", taskHandler.CreateTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Patch("/{id}/status", taskHandler.SetStatus)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	r.Route("/fleet-task-passengers", func(r chi.Router) {
		r.Get("/task/{taskId}", passengerHandler.ListByTask)
		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireMutation)
			r.Post("/", passengerHandler.CreatePassenger)
			r.Delete("/{id}", passengerHandler.DeletePassenger)
			r.Delete("/task/{taskId}", passengerHandler.DeleteByTask)
		})
	})

	r.Get("/employees/company/{companyId}/workers", employeeHandler.ListWorkers)

	return r
}
