package http

import (
	"log/slog"
	"net/http"

	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/middleware"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the cross-cutting settings of the HTTP stack.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			// Employee self-service
			r.Group(func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)
					r.Get("/today", attendanceHandler.Today)
					r.Get("/my-history", attendanceHandler.MyHistory)
					r.Get("/dashboard", attendanceHandler.Dashboard)
				})

				r.Route("/leave-requests", func(r chi.Router) {
					r.Post("/", leaveHandler.Request)
					r.Get("/my", leaveHandler.MyRequests)
				})
				r.Get("/leave-balance/my", leaveHandler.MyBalance)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", employeeHandler.Get)
						r.Put("/", employeeHandler.Update)
						r.Delete("/", employeeHandler.Delete)
						r.Patch("/deactivate", employeeHandler.Deactivate)
						r.Get("/leave-balance", leaveHandler.EmployeeBalance)
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Post("/", attendanceHandler.Create)
					r.Post("/process-missing", attendanceHandler.ProcessMissing)
					r.Put("/{id}", attendanceHandler.Correct)
					r.Delete("/{id}", attendanceHandler.Delete)
				})

				r.Route("/leave-requests", func(r chi.Router) {
					r.Get("/", leaveHandler.List)
					r.Patch("/{id}/approve", leaveHandler.Approve)
					r.Patch("/{id}/reject", leaveHandler.Reject)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", holidayHandler.List)
					r.Post("/", holidayHandler.Create)
					r.Get("/{id}", holidayHandler.Get)
					r.Put("/{id}", holidayHandler.Update)
					r.Delete("/{id}", holidayHandler.Delete)
				})

				r.Route("/salary", func(r chi.Router) {
					r.Get("/monthly", reportHandler.MonthlySalary)
					r.Get("/monthly/export", reportHandler.ExportMonthlySalary)
					r.Get("/employee/{id}", reportHandler.EmployeeSalary)
					r.Get("/employee/{id}/slip", reportHandler.EmployeeSalarySlip)
				})
			})
		})
	})
	return r
}
