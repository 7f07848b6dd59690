package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

// Handlers groups the per-resource handlers mounted by NewRouter.
type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Expense    ExpenseHandler
	Schedule   ScheduleHandler
	Notice     NoticeHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.History)
				r.Get("/summary", h.Attendance.Summary)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/break/start", h.Attendance.StartBreak)
				r.Post("/break/end", h.Attendance.EndBreak)
			})
		})

		// Administrative
		r.Route("/admin/attendance", func(r chi.Router) {
			r.Use(middleware.RequireAdministrative)
			r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
			r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Put("/{employeeID}/{date}/status", h.Attendance.Review)
			r.With(middleware.RequirePermission(user.PermissionAttendanceOverride)).Put("/{employeeID}/{date}/override", h.Attendance.OverrideStatus)
		})

		r.Route("/leave", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/apply", h.Leave.Apply)
			r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my-leaves", h.Leave.MyLeaves)
			r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.Balance)
			r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Put("/{id}/cancel", h.Leave.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdministrative)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/all", h.Leave.ListAll)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/status", h.Leave.Decide)
				r.With(middleware.RequirePermission(user.PermissionLeaveReports)).Get("/statistics", h.Leave.Statistics)
			})
		})

		r.Route("/expense", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionExpenseCreate)).Post("/apply", h.Expense.Apply)
			r.With(middleware.RequirePermission(user.PermissionExpenseViewOwn)).Get("/my-claims", h.Expense.MyClaims)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdministrative)
				r.With(middleware.RequirePermission(user.PermissionExpenseViewAll)).Get("/all", h.Expense.ListAll)
				r.With(middleware.RequirePermission(user.PermissionExpenseApprove)).Put("/{id}/status", h.Expense.Decide)
			})
		})

		r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/employee/schedule", h.Schedule.MySchedule)

		r.Route("/notices", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionNoticeView))
			r.Get("/", h.Notice.List)
			r.Get("/{id}", h.Notice.Get)
			r.Put("/{id}/read", h.Notice.MarkRead)
			r.With(middleware.RequirePermission(user.PermissionNoticePublish)).Post("/", h.Notice.Create)
		})
	})
	return r
}
