package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"social-care-go/internal/config"
	"social-care-go/internal/metrics"
	"social-care-go/internal/transport/httpserver/handler"
	caremw "social-care-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(caremw.NewCORS([]string{"http://localhost:5173"}))
	if collector != nil {
		r.Use(caremw.Metrics(collector))
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(caremw.RequireActor)

			r.Post("/persons", handlers.CreatePerson)
			r.Get("/persons/{id}", handlers.GetPerson)
			r.Post("/professionals", handlers.CreateProfessional)
			r.Post("/units", handlers.CreateUnit)

			r.Post("/families", handlers.CreateFamily)
			r.Get("/families/{id}", handlers.GetFamily)
			r.Get("/families/{id}/income-summary", handlers.GetFamilyIncomeSummary)
			r.Post("/families/{id}/members", handlers.AddFamilyMember)
			r.Delete("/families/{id}/members/{person_id}", handlers.RemoveFamilyMember)
			r.Post("/families/{id}/responsible", handlers.TransferResponsibility)
			r.Post("/families/{id}/incomes", handlers.AddFamilyIncome)
			r.Post("/families/{id}/expenses", handlers.AddFamilyExpense)
			r.Post("/families/{id}/vulnerabilities", handlers.AttachVulnerability)
			r.Post("/vulnerabilities/{id}/resolve", handlers.ResolveVulnerability)

			r.Get("/attendances", handlers.ListAttendances)
			r.Post("/attendances", handlers.CreateAttendance)
			r.Get("/attendances/{id}", handlers.GetAttendance)
			r.Patch("/attendances/{id}", handlers.UpdateAttendance)
			r.Post("/attendances/{id}/participants", handlers.AddAttendanceParticipant)
			r.Post("/attendances/{id}/professionals", handlers.AddAttendanceProfessional)
			r.Post("/attendances/{id}/reasons", handlers.AddAttendanceReason)

			r.Get("/dispensations", handlers.ListDispensations)
			r.Post("/dispensations", handlers.CreateDispensation)
			r.Get("/dispensations/{id}", handlers.GetDispensation)
			r.Post("/dispensations/{id}/authorize", handlers.AuthorizeDispensation)
			r.Post("/dispensations/{id}/reject", handlers.RejectDispensation)
			r.Post("/dispensations/{id}/cancel", handlers.CancelDispensation)

			r.Get("/settings", handlers.GetSettings)
			r.Patch("/settings", handlers.UpdateSettings)
		})
	})

	return r
}
