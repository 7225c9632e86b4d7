package routes

import (
	"net/http"
	"time"

	"mentorhub/handlers"
	"mentorhub/middleware"
	"mentorhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHealthRoute registers a health-check endpoint reporting the last
// dependency check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterSharedRoutes registers reference data and week endpoints open to every role.
func RegisterSharedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		api.GET("/reference/dashboard", hb.Reference.DashboardHandler)
		api.GET("/reference/:collection", hb.Reference.CollectionHandler)
		api.GET("/week/current", hb.Week.CurrentWeekHandler)
		api.GET("/week/:year/:week", hb.Week.WeekRangeHandler)
	}
}

func registerSessionRoutes(g *gin.RouterGroup, h *handlers.AvailabilityHandler) {
	g.POST("/availability/sessions", h.OpenSessionHandler)
	g.GET("/availability/sessions/:id", h.GetSessionHandler)
	g.PATCH("/availability/sessions/:id/slots", h.ToggleSlotsHandler)
	g.POST("/availability/sessions/:id/save", h.SaveSessionHandler)
	g.POST("/availability/sessions/:id/reload", h.ReloadSessionHandler)
	g.DELETE("/availability/sessions/:id", h.CloseSessionHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.JWTSecret), middleware.RequireRole(utils.RoleAdmin))
		adminGroup.GET("/schedule-requests", hb.ScheduleRequest.ListHandler)
		adminGroup.POST("/schedule-requests/:id/approve", hb.ScheduleRequest.ApproveHandler)
		adminGroup.POST("/schedule-requests/:id/reject", hb.ScheduleRequest.RejectHandler)
		adminGroup.POST("/schedules", hb.ScheduleRequest.AddScheduleHandler)
		adminGroup.GET("/activity", hb.Admin.ActivityFeedHandler)
		adminGroup.GET("/availability/:mentorID/:week", hb.Availability.GetMentorAvailabilityHandler)
		registerSessionRoutes(adminGroup, hb.Availability)
	}
}

// RegisterMentorRoutes sets up a mentor's own availability endpoints.
func RegisterMentorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	mentorGroup := r.Group("/api/mentor")
	{
		mentorGroup.Use(middleware.JWTAuthMiddleware(hb.JWTSecret), middleware.RequireRole(utils.RoleMentor))
		mentorGroup.GET("/availability", hb.Availability.GetMyAvailabilityHandler)
		mentorGroup.PUT("/availability", hb.Availability.SaveMyAvailabilityHandler)
		registerSessionRoutes(mentorGroup, hb.Availability)
	}
}

// RegisterStudentRoutes sets up schedule request submission and drafts.
func RegisterStudentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	studentGroup := r.Group("/api/student")
	{
		studentGroup.Use(middleware.JWTAuthMiddleware(hb.JWTSecret), middleware.RequireRole(utils.RoleStudent))
		studentGroup.POST("/schedule-requests", hb.ScheduleRequest.SubmitHandler)
		studentGroup.POST("/drafts", hb.ScheduleRequest.CreateDraftHandler)
		studentGroup.GET("/drafts/:id", hb.ScheduleRequest.GetDraftHandler)
		studentGroup.PATCH("/drafts/:id", hb.ScheduleRequest.UpdateDraftHandler)
		studentGroup.POST("/drafts/:id/submit", hb.ScheduleRequest.SubmitDraftHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if err := r.SetTrustedProxies(hb.TrustedProxies); err != nil {
		utils.GetLogger().Fatal("routes: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSharedRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterMentorRoutes(r, hb)
	RegisterStudentRoutes(r, hb)
}
