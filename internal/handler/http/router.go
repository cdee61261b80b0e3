package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/user"
	"github.com/glowdesk/salon-backend-go/internal/handler/http/middleware"
	"github.com/glowdesk/salon-backend-go/internal/handler/http/response"
	"github.com/glowdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig carries the deployment settings the router needs.
type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
	Store          Pinger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "salon-backend"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if cfg.Store != nil {
			if err := cfg.Store.Ping(ctx); err != nil {
				slog.Warn("Readiness check failed", "error", err)
				response.ServiceUnavailable(w, "Store unavailable")
				return
			}
		}
		response.Success(w, map[string]string{"status": "ready", "version": cfg.Version})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendancePunch))
					r.Post("/punch-in", attendanceHandler.PunchIn)
					r.Post("/punch-out", attendanceHandler.PunchOut)
					r.Get("/today", attendanceHandler.Today)
				})

				// Manager / owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Use(middleware.RequirePermission(user.PermissionAttendanceEdit))
					r.Put("/manual", attendanceHandler.MarkManual)
					r.Post("/bulk", attendanceHandler.BulkMark)
					r.Patch("/{staffName}/{date}", attendanceHandler.Update)
					r.Delete("/{staffName}/{date}", attendanceHandler.Delete)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).
						Get("/stats", attendanceHandler.AllStats)
				})

				// Own records, or anyone's for managers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/{staffName}", attendanceHandler.ListMonth)
					r.Get("/{staffName}/stats", attendanceHandler.Stats)
					r.Get("/{staffName}/export", attendanceHandler.ExportCSV)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.Summary)
				r.With(middleware.RequirePermission(user.PermissionPayrollExport)).Get("/export", payrollHandler.ExportXLSX)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{staffId}", payrollHandler.Get)
			})
		})
	})
	return r
}
