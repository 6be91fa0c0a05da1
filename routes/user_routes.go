package routes

import (
	"github.com/Govind-619/MemoWorks/controllers"
	"github.com/gin-gonic/gin"
)

// initUserRoutes wires the account endpoints
func initUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/me", controllers.GetProfile)
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.POST("/me/avatar", controllers.UploadAvatar)
		users.GET("/:id/avatar", controllers.GetAvatar)
	}
}

// initTaskRoutes wires the task endpoints
func initTaskRoutes(api *gin.RouterGroup) {
	tasks := api.Group("/tasks")
	{
		tasks.GET("", controllers.ListTasks)
		tasks.GET("/:id", controllers.GetTask)
		tasks.GET("/title/:title", controllers.GetTaskByTitle)
		tasks.POST("", controllers.CreateTask)
		tasks.PUT("/:id", controllers.UpdateTask)
		tasks.DELETE("/:id", controllers.DeleteTask)
		tasks.POST("/:id/image", controllers.UploadTaskImage)
		tasks.GET("/:id/image", controllers.GetTaskImage)
	}
}

// initGroupRoutes wires the group endpoints
func initGroupRoutes(api *gin.RouterGroup) {
	groups := api.Group("/groups")
	{
		groups.GET("", controllers.ListGroups)
		groups.GET("/:id", controllers.GetGroup)
		groups.GET("/name/:name", controllers.GetGroupByName)
		groups.POST("", controllers.CreateGroup)
		groups.PUT("/:id", controllers.UpdateGroup)
		groups.DELETE("/:id", controllers.DeleteGroup)
		groups.POST("/:id/image", controllers.UploadGroupImage)
		groups.GET("/:id/image", controllers.GetGroupImage)
	}
}

// initNotificationRoutes wires the notification endpoints
func initNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.POST("", controllers.CreateNotification)
	}
}
