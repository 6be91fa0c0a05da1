package controllers

import (
	"strings"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// ListNotifications returns a paginated list of broadcast notifications
func ListNotifications(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Notification{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count notifications", err.Error())
		return
	}
	pagination.SetTotal(total)

	var notifications []models.Notification
	if err := config.DB.Limit(pagination.Limit).Offset(pagination.Offset).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Notifications retrieved", notifications,
		pagination.Total, pagination.Page, pagination.Limit)
}

// NotificationRequest represents the create notification body
type NotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateNotification publishes a new broadcast notification. Titles are
// stored lowercased so duplicates differing only in case collide.
func CreateNotification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	title := strings.ToLower(utils.SanitizeString(req.Title))
	message := strings.ToLower(utils.SanitizeString(req.Message))

	var existing models.Notification
	if err := config.DB.Where("title = ?", title).First(&existing).Error; err == nil {
		utils.Conflict(c, "Notification already exists", "A notification with this title already exists")
		return
	}

	notification := models.Notification{Title: title, Message: message}
	if err := config.DB.Create(&notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to create notification", err.Error())
		return
	}

	utils.LogInfo("Notification %d created", notification.ID)
	utils.Created(c, "Notification created", notification)
}
