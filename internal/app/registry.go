package app

import (
	"database/sql"
	"path/filepath"

	"go-wfm/internal/analytics"
	"go-wfm/internal/auth"
	"go-wfm/internal/employee"
	"go-wfm/internal/kiosk"
	"go-wfm/internal/messaging/kafka"
	"go-wfm/internal/middleware"
	"go-wfm/internal/rbac"
	"go-wfm/internal/rbac/infra"
	"go-wfm/internal/shared/counter"
	"go-wfm/internal/station"
	"go-wfm/internal/timelog"
	"go-wfm/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	stationRepo := station.NewRepository(gormDB)
	timelogRepo := timelog.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	stationService := station.NewService(db, stationRepo)
	timelogService := timelog.NewServiceWithOutbox(db, timelogRepo, outboxRepo)
	timesheetService := timesheet.NewService(timesheetRepo)
	analyticsService := analytics.NewService(analyticsRepo, zap.L())

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	stationHandler := station.NewHandler(stationService)
	timelogHandler := timelog.NewHandler(timelogService)
	kioskHandler := kiosk.NewHandler(timelogService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	rbacHandler := rbac.NewHandler(rbacRepo, rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		station.RegisterRoutes(api, stationHandler, rbacService)
		timelog.RegisterRoutes(api, timelogHandler, rbacService)
		kiosk.RegisterRoutes(api, kioskHandler, middleware.Idempotency(rdb))
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		analytics.RegisterRoutes(api, analyticsHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, middleware.AuthMiddleware())
	}

	return nil
}
