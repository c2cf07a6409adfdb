package routes

import (
	"net/http"
	"time"

	"librarium/config"
	"librarium/handlers"
	"librarium/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the end-user surface: fines, coupons and the wheel.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users/:userID")
	{
		api.GET("/fines", hb.FineHandler.GetUserFinesHandler)
		api.GET("/coupons", hb.CouponHandler.ListUserCouponsHandler)
		api.GET("/coupons/available", hb.CouponHandler.ListAvailableCouponsHandler)
		api.GET("/spin", hb.SpinHandler.SpinStatusHandler)
		api.POST("/spin", hb.SpinHandler.SpinHandler)
	}
}

// RegisterFineRoutes registers quote and payment of a single fine.
func RegisterFineRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/fines")
	{
		api.GET("/:recordID/quote", hb.FineHandler.QuoteFineHandler)
		api.POST("/:recordID/pay", hb.FineHandler.PayFineHandler)
	}
}

// RegisterWheelRoutes exposes the live wheel read-only to users.
func RegisterWheelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/wheel", hb.WheelHandler.CurrentWheelHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Librarium"})
	})
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminToken string) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminTokenMiddleware(adminToken))
	{
		adminGroup.GET("/fines", hb.FineHandler.AdminFinesHandler)
		adminGroup.POST("/fines/pay-batch", hb.FineHandler.PayBatchHandler)
		adminGroup.GET("/settings/fine-rate", hb.SettingsHandler.GetFineRateHandler)
		adminGroup.PUT("/settings/fine-rate", hb.SettingsHandler.SetFineRateHandler)
		adminGroup.GET("/coupons", hb.CouponHandler.AdminListCouponsHandler)
		adminGroup.POST("/coupons", hb.CouponHandler.AdminCreateCouponHandler)
	}

	wheels := adminGroup.Group("/wheels")
	{
		wheels.GET("", hb.WheelHandler.ListWheelsHandler)
		wheels.POST("", hb.WheelHandler.CreateWheelHandler)
		wheels.GET("/current", hb.WheelHandler.CurrentWheelHandler)
		wheels.GET("/:wheelID", hb.WheelHandler.GetWheelHandler)
		wheels.PATCH("/:wheelID/active", hb.WheelHandler.SetWheelActiveHandler)
		wheels.PUT("/:wheelID/spin-limit", hb.WheelHandler.SetSpinLimitHandler)
		wheels.PUT("/:wheelID/current", hb.WheelHandler.SetCurrentWheelHandler)
		wheels.GET("/:wheelID/rewards", hb.WheelHandler.ListRewardsHandler)
		wheels.POST("/:wheelID/rewards", hb.WheelHandler.AddRewardHandler)
		wheels.PUT("/:wheelID/rewards/:rewardID", hb.WheelHandler.EditRewardHandler)
		wheels.DELETE("/:wheelID/rewards/:rewardID", hb.WheelHandler.DeleteRewardHandler)
		wheels.PATCH("/:wheelID/rewards/:rewardID/toggle", hb.WheelHandler.ToggleRewardHandler)
		wheels.PUT("/:wheelID/probabilities", hb.WheelHandler.UpdateProbabilitiesHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterFineRoutes(r, hb)
	RegisterWheelRoutes(r, hb)
	RegisterAdminRoutes(r, hb, config.AppConfig.AdminToken)
}
