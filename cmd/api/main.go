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

	"github.com/Syntax-Move/attendance-system-backend/internal/config"
	appHTTP "github.com/Syntax-Move/attendance-system-backend/internal/handler/http"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/cron"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/jwt"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/qrcode"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/postgresql"
	attendanceService "github.com/Syntax-Move/attendance-system-backend/internal/service/attendance"
	serviceAuth "github.com/Syntax-Move/attendance-system-backend/internal/service/auth"
	employeeService "github.com/Syntax-Move/attendance-system-backend/internal/service/employee"
	holidayService "github.com/Syntax-Move/attendance-system-backend/internal/service/holiday"
	leaveService "github.com/Syntax-Move/attendance-system-backend/internal/service/leave"
	reportService "github.com/Syntax-Move/attendance-system-backend/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

const appVersion = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.App.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-system"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	loc, err := cfg.Attendance.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	rules, err := attendanceService.NewRules(cfg.Attendance)
	if err != nil {
		return fmt.Errorf("attendance rules: %w", err)
	}
	qrValidator := qrcode.NewValidator(cfg.Attendance.QRCodeSuffix, cfg.Attendance.QRCodeValidity)
	ledger := leaveService.NewLedger(leaveBalanceRepo, cfg.Attendance)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		summaryRepo,
		deductionRepo,
		employeeRepo,
		holidayRepo,
		leaveRequestRepo,
		ledger,
		rules,
		qrValidator,
		clk,
	)
	leaveSvc := leaveService.NewLeaveService(
		tx,
		leaveRequestRepo,
		attendanceRepo,
		employeeRepo,
		ledger,
		attendanceSvc,
		cfg.Attendance.MinutesPerWorkDay,
		clk,
	)
	holidaySvc := holidayService.NewHolidayService(tx, holidayRepo, attendanceRepo, employeeRepo, deductionRepo, attendanceSvc)
	reportSvc := reportService.NewReportService(reportRepo, attendanceRepo, deductionRepo, employeeRepo, clk)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewHolidayHandler(holidaySvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(clk)
		if err := cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register cron jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
