package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/leave-backend-go/internal/config"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	ledgerHandler LedgerHandler,
	employeeHandler EmployeeHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lgu-leave-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			if cfg.OAuth2Google.Enabled() {
				r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
				r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
			}

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", authHandler.Me)
				r.Post("/sse-token", authHandler.SSEToken)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			// The stream authenticates via a short-lived query token because
			// EventSource cannot send an Authorization header.
			r.Get("/stream", notificationHandler.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkRead)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/", leaveHandler.ListRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Get("/{id}/history", leaveHandler.GetHistory)
				r.Delete("/{id}", leaveHandler.CancelRequest)

				r.With(middleware.RequirePermission(employee.PermissionLeaveRecommend)).
					Post("/{id}/recommend", leaveHandler.RecommendRequest)
				r.With(middleware.RequirePermission(employee.PermissionLeaveHRApprove)).
					Post("/{id}/approve", leaveHandler.HRDecideRequest)
				r.With(middleware.RequirePermission(employee.PermissionLeaveFinalDecide)).
					Post("/{id}/process", leaveHandler.MayorDecideRequest)
			})

			r.Route("/leave-records", func(r chi.Router) {
				r.Get("/my", ledgerHandler.GetMyRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionLedgerManage))
					r.Post("/add-undertime", ledgerHandler.AddUndertime)
				})
				r.With(middleware.RequirePermission(employee.PermissionLedgerViewAll)).
					Get("/{employeeID}", ledgerHandler.GetEmployeeRecords)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)
				r.Post("/{id}/avatar", employeeHandler.UploadAvatar)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionEmployeeManage))
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Get("/departments", employeeHandler.ListDepartments)
		})
	})

	return r
}
