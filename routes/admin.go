package routes

import (
	"github.com/gin-gonic/gin"

	adminControllers "github.com/codedevify/Urbansolz/controllers/admin"
	"github.com/codedevify/Urbansolz/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Login is the only
// open one; the rest require a valid admin JWT.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	r.POST("/admin/login", adminControllers.Login(deps.Admins))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminAuth())
	{
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminControllers.ListOrders(deps.Orders))
			orderAdmin.GET("/export", adminControllers.ExportOrdersToExcel(deps.Orders))
			orderAdmin.PUT("/:id/status", adminControllers.UpdateOrderStatus(deps.Orders))
		}

		adminGroup.GET("/payment-config", adminControllers.GetPaymentConfig(deps.Settings))
		adminGroup.PUT("/payment-config", adminControllers.UpdatePaymentConfig(deps.Settings))
		adminGroup.PUT("/email-config", adminControllers.UpdateEmailConfig(deps.Settings, deps.MailConfig))
		adminGroup.POST("/test-email", adminControllers.TestEmail(deps.Mail))
	}
}
