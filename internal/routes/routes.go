package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/cache"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/nextbarber-api/internal/infra/repository"
	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/storage"
	ucAppointment "github.com/BruksfildServices01/nextbarber-api/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/nextbarber-api/internal/usecase/payment"
	ucReview "github.com/BruksfildServices01/nextbarber-api/internal/usecase/review"
)

// Deps are the process singletons the routes are built from.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Tokens  *auth.Tokens
	Cache   cache.Store
	Store   storage.ObjectStore
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
	Logger  *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		logger.Middleware(d.Logger),
		d.Metrics.Middleware(),
		middleware.CORSMiddleware(cfg.Server.CORSOrigins),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	uploader := handlers.NewImageUploader(d.Store)
	loginLimiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerMin, cfg.Auth.LoginBurst)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	listMyAppointmentsUC := ucAppointment.NewListMyAppointments(appointmentRepo)
	listShopAppointmentsUC := ucAppointment.NewListBarbershopAppointments(appointmentRepo)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, d.Audit)
	updateReviewUC := ucReview.NewUpdateReview(reviewRepo, d.Audit)
	replyReviewUC := ucReview.NewReplyReview(reviewRepo, d.Audit)
	listReviewsUC := ucReview.NewListBarbershopReviews(reviewRepo)

	registerPaymentUC := ucPayment.NewRegisterPayment(paymentRepo, d.Audit)
	updatePaymentUC := ucPayment.NewUpdatePayment(paymentRepo, d.Audit)
	listPaymentsUC := ucPayment.NewListPayments(paymentRepo)
	listShopPaymentsUC := ucPayment.NewListBarbershopPayments(paymentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(db, cfg.App.Name, cfg.App.Version)
	authHandler := handlers.NewAuthHandler(db, cfg.Auth, d.Tokens, d.Cache, d.Metrics)
	userHandler := handlers.NewUserHandler(db)

	barbershopHandler := handlers.NewBarbershopHandler(db, d.Audit, uploader, cfg.Auth.DefaultShopTZ)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	favoriteHandler := handlers.NewFavoriteHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db, uploader)
	barberHandler := handlers.NewBarberHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		listMyAppointmentsUC,
		listShopAppointmentsUC,
		d.Metrics,
	)

	reviewHandler := handlers.NewReviewHandler(
		createReviewUC,
		updateReviewUC,
		replyReviewUC,
		listReviewsUC,
		d.Metrics,
	)

	paymentHandler := handlers.NewPaymentHandler(
		registerPaymentUC,
		updatePaymentUC,
		listPaymentsUC,
		listShopPaymentsUC,
		d.Metrics,
	)

	membershipHandler := handlers.NewMembershipHandler(db, d.Cache)
	orderHandler := handlers.NewOrderHandler(db, d.Metrics)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 SERVICE
	// ======================================================
	r.GET("/", publicHandler.Root)
	r.GET("/api/health", publicHandler.Health)
	r.GET("/api/ready", publicHandler.Ready)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	authed := middleware.AuthMiddleware(d.Tokens, db)
	superAdmin := middleware.RequireRoles(middleware.SuperAdminOnly...)
	shopAdmins := middleware.RequireRoles(middleware.ShopAdmins...)
	anyRole := middleware.RequireRoles(middleware.AnyRole...)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/registro", authHandler.Register)
			authGroup.POST("/login", loginLimiter.Middleware(), authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)

			authGroup.GET("/me", authed, anyRole, authHandler.Me)
			authGroup.PUT("/cambiar-password", authed, anyRole, authHandler.ChangePassword)
			authGroup.POST("/logout", authed, anyRole, authHandler.Logout)
		}

		// ------------------------------
		// 👤 USERS
		// ------------------------------
		users := api.Group("/usuarios", authed)
		{
			users.GET("", superAdmin, userHandler.List)
			users.POST("", superAdmin, userHandler.Create)
			users.GET("/:id", superAdmin, userHandler.Get)
			users.PUT("/:id", anyRole, userHandler.Update)
			users.DELETE("/:id", superAdmin, userHandler.Deactivate)
		}

		// ------------------------------
		// 💈 BARBERSHOPS
		// ------------------------------
		shops := api.Group("/barberias")
		{
			shops.GET("", barbershopHandler.ListPublic)
			shops.GET("/admin", authed, superAdmin, barbershopHandler.ListAdmin)
			shops.GET("/:id", barbershopHandler.Get)
			shops.GET("/:id/horario", workingHoursHandler.Get)

			shops.POST("", authed, superAdmin, barbershopHandler.Create)
			shops.PUT("/:id", authed, shopAdmins, barbershopHandler.Update)
			shops.PUT("/:id/admin", authed, superAdmin, barbershopHandler.AdminUpdate)
			shops.POST("/:id/activar", authed, superAdmin, barbershopHandler.Activate)
			shops.POST("/:id/suspender", authed, superAdmin, barbershopHandler.Suspend)
			shops.POST("/:id/logo", authed, shopAdmins, barbershopHandler.UploadLogo)
			shops.POST("/:id/fotos", authed, shopAdmins, barbershopHandler.UploadPhoto)
			shops.PUT("/:id/horario", authed, shopAdmins, workingHoursHandler.Update)
		}

		favorites := api.Group("/favoritos", authed, anyRole)
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("/:barberia_id", favoriteHandler.Add)
			favorites.DELETE("/:barberia_id", favoriteHandler.Remove)
		}

		// ------------------------------
		// ✂️ CATALOG
		// ------------------------------
		services := api.Group("/servicios")
		{
			services.GET("/barberia/:id", serviceHandler.ListByBarbershop)
			services.POST("", authed, shopAdmins, serviceHandler.Create)
			services.PUT("/:id", authed, shopAdmins, serviceHandler.Update)
			services.DELETE("/:id", authed, shopAdmins, serviceHandler.Delete)
		}

		products := api.Group("/productos")
		{
			products.GET("/barberia/:id", productHandler.ListByBarbershop)
			products.POST("", authed, shopAdmins, productHandler.Create)
			products.PUT("/:id", authed, shopAdmins, productHandler.Update)
			products.DELETE("/:id", authed, shopAdmins, productHandler.Delete)
			products.POST("/:id/imagen", authed, shopAdmins, productHandler.UploadImage)
		}

		barbers := api.Group("/barberos")
		{
			barbers.GET("/barberia/:id", barberHandler.ListByBarbershop)
			barbers.POST("", authed, shopAdmins, barberHandler.Create)
			barbers.PUT("/:id", authed, shopAdmins, barberHandler.Update)
			barbers.DELETE("/:id", authed, shopAdmins, barberHandler.Delete)
		}

		// ------------------------------
		// 📅 APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/citas", authed)
		{
			appointments.POST("", anyRole, appointmentHandler.Create)
			appointments.GET("/mis-citas", anyRole, appointmentHandler.ListMine)
			appointments.GET("/barberia/:id", shopAdmins, appointmentHandler.ListByBarbershop)
			appointments.PUT("/:id", anyRole, appointmentHandler.Update)
			appointments.POST("/:id/cancelar", anyRole, appointmentHandler.Cancel)
		}

		// ------------------------------
		// ⭐ REVIEWS
		// ------------------------------
		reviews := api.Group("/resenas")
		{
			reviews.GET("/barberia/:id", reviewHandler.ListByBarbershop)
			reviews.POST("", authed, anyRole, reviewHandler.Create)
			reviews.PUT("/:id", authed, anyRole, reviewHandler.Update)
			reviews.POST("/:id/responder", authed, shopAdmins, reviewHandler.Reply)
		}

		// ------------------------------
		// 💳 BILLING
		// ------------------------------
		payments := api.Group("/pagos", authed)
		{
			payments.GET("", superAdmin, paymentHandler.List)
			payments.GET("/barberia/:id", shopAdmins, paymentHandler.ListByBarbershop)
			payments.POST("", superAdmin, paymentHandler.Register)
			payments.PUT("/:id", superAdmin, paymentHandler.Update)
		}

		memberships := api.Group("/membresias")
		{
			memberships.GET("", membershipHandler.List)
			memberships.GET("/:id", membershipHandler.Get)
			memberships.POST("", authed, superAdmin, membershipHandler.Create)
		}

		// ------------------------------
		// 🛒 ORDERS
		// ------------------------------
		orders := api.Group("/pedidos", authed)
		{
			orders.POST("", anyRole, orderHandler.Create)
			orders.GET("/mis-pedidos", anyRole, orderHandler.ListMine)
			orders.GET("/barberia/:id", shopAdmins, orderHandler.ListByBarbershop)
			orders.PUT("/:id/estado", shopAdmins, orderHandler.UpdateStatus)
		}

		// ------------------------------
		// 📜 AUDIT
		// ------------------------------
		api.GET("/auditoria", authed, shopAdmins, auditLogsHandler.List)
	}
}
