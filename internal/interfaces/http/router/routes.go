package router

import (
	"github.com/gin-gonic/gin"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/interfaces/http/handler"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the controllers mounted by RegisterAPI
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Inventory   *handler.InventoryHandler
	Training    *handler.TrainingHandler
	Content     *handler.ContentHandler
	Integration *handler.IntegrationHandler
	Dashboard   *handler.DashboardHandler
}

// APIOptions configures authentication and authorization of the API
type APIOptions struct {
	Authenticator middleware.Authenticator
	Policy        *identity.Policy
	Logger        *zap.Logger
	// LoginLimiter throttles POST /auth/token per client IP; nil disables it
	LoginLimiter *middleware.RateLimiter
	// SeedEnabled exposes POST /auth/init-users
	SeedEnabled bool
}

// RegisterAPI mounts the public endpoints and the versioned API on engine.
// Every /api/v1 route except token issuance and seeding requires a bearer
// token and a policy grant for its action.
func RegisterAPI(engine *gin.Engine, h Handlers, opts APIOptions) {
	engine.GET("/", h.System.Root)
	engine.GET("/health", h.System.Health)

	policy := opts.Policy
	if policy == nil {
		policy = identity.DefaultPolicy()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	can := func(action identity.Action) gin.HandlerFunc {
		return middleware.RequireActionWithConfig(middleware.PermissionConfig{Policy: policy, Logger: log}, action)
	}
	authenticated := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(opts.Authenticator, log),
		middleware.TracingAttributeInjector(),
	}

	r := NewRouter(engine, WithAPIVersion("v1"))

	public := NewDomainGroup("auth-public", "/auth")
	if opts.LoginLimiter != nil {
		public.POST("/token", middleware.RateLimit(opts.LoginLimiter), h.Auth.Token)
	} else {
		public.POST("/token", h.Auth.Token)
	}
	if opts.SeedEnabled {
		public.POST("/init-users", h.Auth.InitUsers)
	}

	auth := NewDomainGroup("auth", "/auth").Use(authenticated...)
	auth.GET("/me", h.Auth.Me)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/users/", can(identity.ActionUserList), h.User.List)
	auth.POST("/users/", can(identity.ActionUserCreate), h.User.Create)
	auth.DELETE("/users/:id", can(identity.ActionUserDelete), h.User.Delete)

	inventory := NewDomainGroup("inventory", "/inventory").Use(authenticated...)
	inventory.GET("/", can(identity.ActionInventoryView), h.Inventory.List)
	inventory.POST("/", can(identity.ActionInventoryCreate), h.Inventory.Create)
	inventory.DELETE("/:id", can(identity.ActionInventoryDelete), h.Inventory.Delete)
	inventory.GET("/utilization", can(identity.ActionInventoryView), h.Inventory.Utilization)
	inventory.GET("/transactions/:kit_id", can(identity.ActionInventoryView), h.Inventory.Transactions)
	inventory.POST("/audit-export", can(identity.ActionInventoryExport), h.Inventory.AuditExport)

	training := NewDomainGroup("training", "/training").Use(authenticated...)
	training.GET("/", can(identity.ActionTrainingView), h.Training.ListPrograms)
	training.POST("/", can(identity.ActionTrainingCreate), h.Training.CreateProgram)
	training.DELETE("/:id", can(identity.ActionTrainingDelete), h.Training.DeleteProgram)
	training.GET("/:id/batches", can(identity.ActionTrainingView), h.Training.ListBatches)
	training.POST("/:id/batches", can(identity.ActionBatchManage), h.Training.CreateBatch)

	batches := NewDomainGroup("batches", "/batches").Use(authenticated...)
	batches.GET("/:id", can(identity.ActionTrainingView), h.Training.GetBatch)
	batches.POST("/:id/participants", can(identity.ActionBatchManage), h.Training.AddParticipant)
	batches.GET("/:id/attendance", can(identity.ActionTrainingView), h.Training.ListAttendance)
	batches.POST("/:id/attendance", can(identity.ActionBatchManage), h.Training.RecordAttendance)

	content := NewDomainGroup("content", "/content").Use(authenticated...)
	content.GET("/", can(identity.ActionContentView), h.Content.List)
	content.POST("/", can(identity.ActionContentCreate), h.Content.Create)
	content.POST("/:id/approve", can(identity.ActionContentReview), h.Content.Approve)
	content.POST("/:id/reject", can(identity.ActionContentReview), h.Content.Reject)

	integration := NewDomainGroup("integration", "/integration").Use(authenticated...)
	integration.GET("/logs", can(identity.ActionIntegrationView), h.Integration.Logs)
	sync := integration.Group("sync", "/sync").Use(can(identity.ActionIntegrationSync))
	sync.POST("/content/:id", h.Integration.SyncContent)
	sync.POST("/training/:id", h.Integration.SyncTraining)
	sync.POST("/progress/:id", h.Integration.SyncProgress)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(authenticated...)
	dashboard.GET("/stats", can(identity.ActionDashboardView), h.Dashboard.Stats)

	audit := NewDomainGroup("audit", "/audit").Use(authenticated...)
	audit.GET("/recent", can(identity.ActionAuditView), h.Dashboard.RecentAudit)

	r.Register(public).
		Register(auth).
		Register(inventory).
		Register(training).
		Register(batches).
		Register(content).
		Register(integration).
		Register(dashboard).
		Register(audit)
	r.Setup()
}
