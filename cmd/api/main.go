package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	expenseService "github.com/cmlabs-hris/attendance-backend-go/internal/service/expense"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	noticeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/notice"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

type repositories struct {
	attendance attendance.AttendanceRepository
	leave      leave.LeaveRequestRepository
	claims     expense.ClaimRepository
	shifts     schedule.ShiftRepository
	notices    notice.NoticeRepository
}

// openRepositories selects the store named by STORAGE_TYPE. The returned
// close func releases the database pool, if any.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories, func(), error) {
	if cfg.App.StorageType == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			attendance: memory.NewAttendanceRepository(),
			leave:      memory.NewLeaveRequestRepository(),
			claims:     memory.NewClaimRepository(),
			shifts:     memory.NewShiftRepository(),
			notices:    memory.NewNoticeRepository(),
		}, func() {}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}

	return repositories{
		attendance: postgresql.NewAttendanceRepository(db),
		leave:      postgresql.NewLeaveRequestRepository(db),
		claims:     postgresql.NewClaimRepository(db),
		shifts:     postgresql.NewShiftRepository(db),
		notices:    postgresql.NewNoticeRepository(db),
	}, db.Close, nil
}

func seedShifts(ctx context.Context, repo schedule.ShiftRepository, policy config.Policy, logger *slog.Logger) error {
	shifts, assignments := policy.ScheduleSeed()
	for _, s := range shifts {
		if err := repo.Save(ctx, s); err != nil {
			return fmt.Errorf("seed shift %s: %w", s.ID, err)
		}
	}
	for _, a := range assignments {
		if err := repo.Assign(ctx, a); err != nil {
			return fmt.Errorf("seed assignment %s/%s: %w", a.EmployeeID, a.ShiftID, err)
		}
	}
	if len(shifts) > 0 || len(assignments) > 0 {
		logger.Info("seeded shifts from policy", slog.Int("shifts", len(shifts)), slog.Int("assignments", len(assignments)))
	}
	return nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := seedShifts(ctx, repos.shifts, cfg.Policy, logger); err != nil {
		return err
	}

	clock := timeutil.SystemClock{}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	scheduleSvc := scheduleService.NewScheduleService(repos.shifts, clock, cfg.Policy.WorkingHours(), logger)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.attendance,
		scheduleSvc,
		clock,
		attendanceService.OvertimeBaseline(cfg.App.OvertimeBaseline),
		logger,
	)
	leaveSvc := leaveService.NewLeaveService(repos.leave, cfg.Policy.Entitlements(), clock, logger)
	expenseSvc := expenseService.NewExpenseService(repos.claims, clock, logger)
	noticeSvc := noticeService.NewNoticeService(repos.notices, clock, logger)

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Expense:    appHTTP.NewExpenseHandler(expenseSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Notice:     appHTTP.NewNoticeHandler(noticeSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("storage", cfg.App.StorageType))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
