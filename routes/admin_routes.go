package routes

import (
	"github.com/Govind-619/MemoWorks/controllers"
	"github.com/Govind-619/MemoWorks/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes wires the endpoints restricted to admin users
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/users", controllers.ListUsers)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		reports := admin.Group("/reports")
		{
			reports.GET("/tasks/excel", controllers.DownloadTaskReportExcel)
			reports.GET("/tasks/pdf", controllers.DownloadTaskReportPDF)
		}
	}
}
