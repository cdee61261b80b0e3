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

	_ "time/tzdata"

	"github.com/glowdesk/salon-backend-go/internal/config"
	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	appHTTP "github.com/glowdesk/salon-backend-go/internal/handler/http"
	"github.com/glowdesk/salon-backend-go/internal/pkg/cron"
	"github.com/glowdesk/salon-backend-go/internal/pkg/database"
	"github.com/glowdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/glowdesk/salon-backend-go/internal/repository/postgresql"
	"github.com/glowdesk/salon-backend-go/internal/repository/sqlite"
	attendanceService "github.com/glowdesk/salon-backend-go/internal/service/attendance"
	payrollService "github.com/glowdesk/salon-backend-go/internal/service/payroll"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		attendanceRepo attendance.AttendanceRepository
		staffRepo      staff.StaffRepository
		pinger         appHTTP.Pinger
	)
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		defer store.Close()
		attendanceRepo = sqlite.NewAttendanceRepository(store)
		staffRepo = sqlite.NewStaffRepository(store)
		pinger = store
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, database.PoolConfig{
			DSN:      cfg.DatabaseURL(),
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		attendanceRepo = postgresql.NewAttendanceRepository(db)
		staffRepo = postgresql.NewStaffRepository(db)
		pinger = db
	}
	slog.Info("Store ready", "driver", cfg.Store.Driver)

	policy := attendance.Policy{
		LateAfter: cfg.LateAfter(),
		Location:  cfg.Location(),
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, policy, time.Now)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, staffRepo, policy)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTTL())

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, staffRepo)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, staffRepo)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
		Store:          pinger,
	}, JWTService, attendanceHandler, payrollHandler)

	if cfg.Cron.MarkAbsent {
		scheduler := cron.NewScheduler(ctx)
		cron.NewAttendanceJobs(attendanceRepo, attendanceSvc, staffRepo, policy, time.Now).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env, "timezone", cfg.Attendance.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
