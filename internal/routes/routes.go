package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domainAppointment "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	domainHours "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	domainWaiting "github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucHours "github.com/BruksfildServices01/barber-booking/internal/usecase/businesshours"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	ucWaiting "github.com/BruksfildServices01/barber-booking/internal/usecase/waitinglist"
)

// ======================================================
// INFRA
// ======================================================

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache cobre leitura, invalidação por barbeiro/dia e flush total.
type AvailabilityCache interface {
	ucAppointment.AvailabilityCache
	DeleteAll(ctx context.Context) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Repositories struct {
	Appointments  domainAppointment.Repository
	WaitingList   domainWaiting.Repository
	BusinessHours domainHours.Repository
	Directory     directory.Repository
	AuditLogs     audit.Store
	Tx            TxManager
}

func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Appointments:  infraRepo.NewAppointmentGormRepository(db),
		WaitingList:   infraRepo.NewWaitingListGormRepository(db),
		BusinessHours: infraRepo.NewBusinessHoursGormRepository(db),
		Directory:     infraRepo.NewDirectoryGormRepository(db),
		AuditLogs:     infraRepo.NewAuditGormRepository(db),
		Tx:            infraRepo.NewGormTxManager(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Appointments:  s.Appointments(),
		WaitingList:   s.WaitingList(),
		BusinessHours: s.BusinessHours(),
		Directory:     s.Directory(),
		AuditLogs:     s.Audit(),
		Tx:            s,
	}
}

type Infra struct {
	Repositories

	Cache         AvailabilityCache
	Audit         Auditor
	Notifications handlers.Notifications
	Metrics       *metrics.Metrics
	Log           *slog.Logger
	Now           func() time.Time
}

func (i Infra) withDefaults() Infra {
	if i.Cache == nil {
		i.Cache = cache.Noop{}
	}
	if i.Audit == nil {
		i.Audit = noopAuditor{}
	}
	if i.Metrics == nil {
		i.Metrics = metrics.New()
	}
	if i.Log == nil {
		i.Log = slog.Default()
	}
	if i.Now == nil {
		i.Now = time.Now
	}
	return i
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

// ======================================================
// ROUTES
// ======================================================

func RegisterRoutes(r *gin.Engine, infra Infra, cfg *config.Config) {
	infra = infra.withDefaults()

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(infra.Metrics))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	calendar := ucHours.NewCalendar(
		infra.BusinessHours,
		infra.Tx,
		infra.Audit,
		infra.Cache,
		infra.Log,
	)

	appointmentDeps := ucAppointment.Deps{
		Appointments: infra.Appointments,
		WaitingList:  infra.WaitingList,
		Directory:    infra.Directory,
		Calendar:     calendar,
		Tx:           infra.Tx,
		Cache:        infra.Cache,
		Audit:        infra.Audit,
		Metrics:      infra.Metrics,
		Log:          infra.Log,
		Now:          infra.Now,
	}

	waitingDeps := ucWaiting.Deps{
		WaitingList: infra.WaitingList,
		Directory:   infra.Directory,
		Tx:          infra.Tx,
		Audit:       infra.Audit,
		Log:         infra.Log,
		Now:         infra.Now,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	shopClock := handlers.ShopClock{
		Location: timezone.Location(cfg.Timezone),
		Now:      infra.Now,
	}

	authHandler := handlers.NewAuthHandler(infra.Directory, cfg)
	meHandler := handlers.NewMeHandler(infra.Directory)
	barberServices := ucCatalog.NewBarberServices(
		infra.Directory,
		infra.Tx,
		infra.Audit,
		infra.Cache,
		infra.Log,
	)
	catalogHandler := handlers.NewCatalogHandler(infra.Directory, barberServices)
	businessHoursHandler := handlers.NewBusinessHoursHandler(calendar)
	publicHandler := handlers.NewPublicHandler(ucAppointment.NewGetAvailability(appointmentDeps))

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentDeps,
		infra.Directory,
		infra.Notifications,
		shopClock,
		infra.Log,
	)

	waitingListHandler := handlers.NewWaitingListHandler(
		waitingDeps,
		infra.Directory,
		infra.Notifications,
		shopClock,
		infra.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(infra.AuditLogs)

	// ======================================================
	// 🩺 OPERAÇÃO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(infra.Metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/barbers", catalogHandler.ListBarbers)
		api.GET("/barbers/:id/services", catalogHandler.ListBarberServices)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/business-hours", businessHoursHandler.Get)
		api.GET("/availability", publicHandler.Availability)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)
			secured.GET("/appointments/customer/:id", appointmentHandler.ByCustomer)
			secured.GET("/appointments/barber/:id",
				middleware.RequireRole(models.RoleBarber, models.RoleAdmin),
				appointmentHandler.ByBarber,
			)

			// ------------------------------
			// WAITING LIST
			// ------------------------------
			secured.POST("/waiting-list", waitingListHandler.Enqueue)
			secured.GET("/waiting-list/customer/:id", waitingListHandler.ByCustomer)
			secured.GET("/waiting-list/barber/:id",
				middleware.RequireRole(models.RoleBarber, models.RoleAdmin),
				waitingListHandler.ByBarber,
			)
			secured.GET("/waiting-list/:id/position", waitingListHandler.Position)
			secured.DELETE("/waiting-list/:id", waitingListHandler.Cancel)

			// ------------------------------
			// 🛠️ ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.PUT("/business-hours", businessHoursHandler.Update)
				admin.POST("/barbers", catalogHandler.CreateBarber)
				admin.PUT("/barbers/:id/services", catalogHandler.ReplaceBarberServices)
				admin.POST("/services", catalogHandler.CreateService)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
