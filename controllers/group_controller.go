package controllers

import (
	"strconv"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// ListGroups returns a paginated list of groups, optionally filtered by
// member or admin email
func ListGroups(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Group{})
	if email := c.Query("member"); email != "" {
		query = query.Joins("JOIN group_members ON group_members.group_id = groups.id").
			Joins("JOIN users ON users.id = group_members.user_id").
			Where("users.email = ?", email)
	}
	if email := c.Query("admin"); email != "" {
		query = query.Joins("JOIN users AS admins ON admins.id = groups.admin_id").
			Where("admins.email = ?", email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count groups", err.Error())
		return
	}
	pagination.SetTotal(total)

	var groups []models.Group
	if err := query.Preload("Admin").Preload("Members").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Order("groups.id").Find(&groups).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch groups", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, groups, pagination)
}

// GetGroup returns a single group by id
func GetGroup(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid group id", nil)
		return
	}

	var group models.Group
	if err := config.DB.Preload("Admin").Preload("Members").
		First(&group, uint(id)).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	utils.Success(c, "Group retrieved", group)
}

// GetGroupByName returns a single group by its exact name
func GetGroupByName(c *gin.Context) {
	name := c.Param("name")

	var group models.Group
	if err := config.DB.Preload("Admin").Preload("Members").
		Where("name = ?", name).First(&group).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	utils.Success(c, "Group retrieved", group)
}

// GroupRequest represents the create/update group body
type GroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Admin       string   `json:"admin"`
	Members     []string `json:"members"`
}

func resolveMembers(emails []string) ([]models.User, error) {
	var members []models.User
	for _, email := range emails {
		var user models.User
		if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
			return nil, err
		}
		members = append(members, user)
	}
	return members, nil
}

// CreateGroup creates a group with the given admin and members. The
// admin is notified by email; delivery problems are only logged.
func CreateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Description = utils.SanitizeString(req.Description)

	if err := utils.ValidateStringLength(req.Name, 1, 100); err != nil {
		utils.BadRequest(c, "Invalid group name", err.Error())
		return
	}

	var existing models.Group
	if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.Conflict(c, "Group already exists", "A group with this name already exists")
		return
	}

	var admin models.User
	if err := config.DB.Where("email = ?", req.Admin).First(&admin).Error; err != nil {
		utils.BadRequest(c, "Admin user not found", nil)
		return
	}

	members, err := resolveMembers(req.Members)
	if err != nil {
		utils.BadRequest(c, "Member not found", nil)
		return
	}

	group := models.Group{
		Name:        req.Name,
		Description: req.Description,
		AdminID:     admin.ID,
		Members:     members,
	}
	if err := config.DB.Create(&group).Error; err != nil {
		utils.InternalServerError(c, "Failed to create group", err.Error())
		return
	}

	if err := utils.SendGroupEmail(admin.Email, group.Name, "created"); err != nil {
		utils.LogError("Failed to send group creation email: %v", err)
	}

	utils.LogInfo("Group %d created by admin %d", group.ID, admin.ID)
	utils.Created(c, "Group created", group)
}

// UpdateGroup applies a partial update to a group and notifies its admin
func UpdateGroup(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid group id", nil)
		return
	}

	var group models.Group
	if err := config.DB.Preload("Admin").First(&group, uint(id)).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Name != "" && req.Name != group.Name {
		req.Name = utils.SanitizeString(req.Name)
		var existing models.Group
		if err := config.DB.Where("name = ? AND id <> ?", req.Name, group.ID).
			First(&existing).Error; err == nil {
			utils.Conflict(c, "Group already exists", "A group with this name already exists")
			return
		}
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = utils.SanitizeString(req.Description)
	}
	if req.Admin != "" {
		var admin models.User
		if err := config.DB.Where("email = ?", req.Admin).First(&admin).Error; err != nil {
			utils.BadRequest(c, "Admin user not found", nil)
			return
		}
		group.AdminID = admin.ID
		group.Admin = admin
	}
	if req.Members != nil {
		members, err := resolveMembers(req.Members)
		if err != nil {
			utils.BadRequest(c, "Member not found", nil)
			return
		}
		if err := config.DB.Model(&group).Association("Members").Replace(members); err != nil {
			utils.InternalServerError(c, "Failed to update members", err.Error())
			return
		}
	}

	if err := config.DB.Save(&group).Error; err != nil {
		utils.InternalServerError(c, "Failed to update group", err.Error())
		return
	}

	if err := utils.SendGroupEmail(group.Admin.Email, group.Name, "updated"); err != nil {
		utils.LogError("Failed to send group update email: %v", err)
	}

	utils.LogInfo("Group %d updated", group.ID)
	utils.Success(c, "Group updated", group)
}

// DeleteGroup removes a group and notifies its admin
func DeleteGroup(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid group id", nil)
		return
	}

	var group models.Group
	if err := config.DB.Preload("Admin").First(&group, uint(id)).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	if err := config.DB.Select("Members").Delete(&group).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete group", err.Error())
		return
	}

	if group.Image != "" {
		if err := utils.DeleteFile(group.Image); err != nil {
			utils.LogDebug("Could not remove group image: %v", err)
		}
	}

	if err := utils.SendGroupEmail(group.Admin.Email, group.Name, "deleted"); err != nil {
		utils.LogError("Failed to send group deletion email: %v", err)
	}

	utils.LogInfo("Group %d deleted", group.ID)
	utils.Success(c, "Group deleted", nil)
}

// UploadGroupImage attaches an image to a group
func UploadGroupImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid group id", nil)
		return
	}

	var group models.Group
	if err := config.DB.First(&group, uint(id)).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/groups")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	old := group.Image
	if err := config.DB.Model(&group).Update("image", path).Error; err != nil {
		utils.InternalServerError(c, "Failed to save image", err.Error())
		return
	}
	if old != "" {
		if err := utils.DeleteFile(old); err != nil {
			utils.LogDebug("Could not remove previous group image: %v", err)
		}
	}

	utils.Success(c, "Group image updated", gin.H{"image": path})
}

// GetGroupImage serves the image attached to a group
func GetGroupImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid group id", nil)
		return
	}

	var group models.Group
	if err := config.DB.First(&group, uint(id)).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}
	if group.Image == "" {
		utils.NotFound(c, "Group has no image")
		return
	}

	c.File(group.Image)
}
