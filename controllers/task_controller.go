package controllers

import (
	"strconv"
	"time"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// ListTasks returns a paginated list of tasks, optionally filtered by
// assignee email
func ListTasks(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Task{})
	if email := c.Query("assignee"); email != "" {
		query = query.Joins("JOIN users ON users.id = tasks.user_id").
			Where("users.email = ?", email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count tasks", err.Error())
		return
	}
	pagination.SetTotal(total)

	var tasks []models.Task
	if err := query.Preload("Labels").Preload("User").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Order("due_date, id").Find(&tasks).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch tasks", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, tasks, pagination)
}

// GetTask returns a single task by id
func GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id", nil)
		return
	}

	var task models.Task
	if err := config.DB.Preload("Labels").Preload("User").
		First(&task, uint(id)).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	utils.Success(c, "Task retrieved", task)
}

// GetTaskByTitle returns a single task by its exact title
func GetTaskByTitle(c *gin.Context) {
	title := c.Param("title")

	var task models.Task
	if err := config.DB.Preload("Labels").Preload("User").
		Where("title = ?", title).First(&task).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	utils.Success(c, "Task retrieved", task)
}

// TaskRequest represents the create/update task body
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	DueTime     string   `json:"due_time"`
	Done        *bool    `json:"done"`
	Labels      []string `json:"labels"`
	Assignee    string   `json:"assignee"`
}

func parseDueDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// CreateTask creates a task assigned to the given user email
func CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	req.Description = utils.SanitizeString(req.Description)

	if err := utils.ValidateStringLength(req.Title, 1, 200); err != nil {
		utils.BadRequest(c, "Invalid title", err.Error())
		return
	}

	var existing models.Task
	if err := config.DB.Where("title = ?", req.Title).First(&existing).Error; err == nil {
		utils.Conflict(c, "Task already exists", "A task with this title already exists")
		return
	}

	var assignee models.User
	if err := config.DB.Where("email = ?", req.Assignee).First(&assignee).Error; err != nil {
		utils.BadRequest(c, "Assignee not found", nil)
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueTime:     req.DueTime,
		UserID:      assignee.ID,
	}
	if req.DueDate != "" {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			utils.BadRequest(c, "Invalid due date", "Expected format YYYY-MM-DD")
			return
		}
		task.DueDate = dueDate
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	for _, label := range req.Labels {
		task.Labels = append(task.Labels, models.TaskLabel{Label: utils.SanitizeString(label)})
	}

	if err := config.DB.Create(&task).Error; err != nil {
		utils.InternalServerError(c, "Failed to create task", err.Error())
		return
	}

	utils.LogInfo("Task %d created for user %d", task.ID, assignee.ID)
	utils.Created(c, "Task created", task)
}

// UpdateTask applies a partial update to a task
func UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id", nil)
		return
	}

	var task models.Task
	if err := config.DB.Preload("Labels").First(&task, uint(id)).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Title != "" && req.Title != task.Title {
		req.Title = utils.SanitizeString(req.Title)
		var existing models.Task
		if err := config.DB.Where("title = ? AND id <> ?", req.Title, task.ID).
			First(&existing).Error; err == nil {
			utils.Conflict(c, "Task already exists", "A task with this title already exists")
			return
		}
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = utils.SanitizeString(req.Description)
	}
	if req.DueDate != "" {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			utils.BadRequest(c, "Invalid due date", "Expected format YYYY-MM-DD")
			return
		}
		task.DueDate = dueDate
	}
	if req.DueTime != "" {
		task.DueTime = req.DueTime
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	if req.Assignee != "" {
		var assignee models.User
		if err := config.DB.Where("email = ?", req.Assignee).First(&assignee).Error; err != nil {
			utils.BadRequest(c, "Assignee not found", nil)
			return
		}
		task.UserID = assignee.ID
	}

	if req.Labels != nil {
		if err := config.DB.Where("task_id = ?", task.ID).
			Delete(&models.TaskLabel{}).Error; err != nil {
			utils.InternalServerError(c, "Failed to update labels", err.Error())
			return
		}
		task.Labels = nil
		for _, label := range req.Labels {
			task.Labels = append(task.Labels, models.TaskLabel{TaskID: task.ID, Label: utils.SanitizeString(label)})
		}
	}

	if err := config.DB.Save(&task).Error; err != nil {
		utils.InternalServerError(c, "Failed to update task", err.Error())
		return
	}

	utils.LogInfo("Task %d updated", task.ID)
	utils.Success(c, "Task updated", task)
}

// DeleteTask removes a task and its labels
func DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id", nil)
		return
	}

	var task models.Task
	if err := config.DB.First(&task, uint(id)).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	if err := config.DB.Select("Labels").Delete(&task).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete task", err.Error())
		return
	}

	if task.Image != "" {
		if err := utils.DeleteFile(task.Image); err != nil {
			utils.LogDebug("Could not remove task image: %v", err)
		}
	}

	utils.LogInfo("Task %d deleted", task.ID)
	utils.Success(c, "Task deleted", nil)
}

// UploadTaskImage attaches an image to a task
func UploadTaskImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id", nil)
		return
	}

	var task models.Task
	if err := config.DB.First(&task, uint(id)).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/tasks")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	old := task.Image
	if err := config.DB.Model(&task).Update("image", path).Error; err != nil {
		utils.InternalServerError(c, "Failed to save image", err.Error())
		return
	}
	if old != "" {
		if err := utils.DeleteFile(old); err != nil {
			utils.LogDebug("Could not remove previous task image: %v", err)
		}
	}

	utils.Success(c, "Task image updated", gin.H{"image": path})
}

// GetTaskImage serves the image attached to a task
func GetTaskImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id", nil)
		return
	}

	var task models.Task
	if err := config.DB.First(&task, uint(id)).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}
	if task.Image == "" {
		utils.NotFound(c, "Task has no image")
		return
	}

	c.File(task.Image)
}
