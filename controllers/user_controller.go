package controllers

import (
	"strconv"
	"strings"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/middleware"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// ListUsers returns a paginated list of all accounts
func ListUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", err.Error())
		return
	}
	pagination.SetTotal(total)

	var users []models.User
	if err := config.DB.Limit(pagination.Limit).Offset(pagination.Offset).
		Order("id").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	utils.SendPaginatedResponse(c, users, pagination)
}

// GetProfile returns the authenticated user's own account
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	utils.Success(c, "Profile retrieved", user)
}

// GetUser returns a single account by id
func GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "User retrieved", user)
}

// UpdateUserRequest represents the fields a user may change
type UpdateUserRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Surnames        string `json:"surnames"`
	Phone           string `json:"phone"`
}

// UpdateUser applies a partial update to an account. Regular users may
// only update themselves; admins may update anyone.
func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	if caller.ID != uint(id) && !caller.IsAdmin {
		utils.Forbidden(c, "You can only update your own account")
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	// Identities are stored lowercased
	req.Username = strings.ToLower(req.Username)
	req.Email = strings.ToLower(req.Email)

	if req.Username != "" && req.Username != user.Username {
		if valid, msg := utils.ValidateUsername(req.Username); !valid {
			utils.BadRequest(c, "Invalid username", msg)
			return
		}
		var existing models.User
		if err := config.DB.Where("username = ? AND id <> ?", req.Username, user.ID).
			First(&existing).Error; err == nil {
			utils.Conflict(c, "Username already taken", nil)
			return
		}
		user.Username = utils.SanitizeString(req.Username)
	}

	if req.Email != "" && req.Email != user.Email {
		if valid, msg := utils.ValidateEmail(req.Email); !valid {
			utils.BadRequest(c, "Invalid email", msg)
			return
		}
		var existing models.User
		if err := config.DB.Where("email = ? AND id <> ?", req.Email, user.ID).
			First(&existing).Error; err == nil {
			utils.Conflict(c, "Email already registered", nil)
			return
		}
		user.Email = utils.SanitizeString(req.Email)
	}

	if req.Password != "" {
		if valid, msg := utils.ValidateConfirmPassword(req.Password, req.ConfirmPassword); !valid {
			utils.BadRequest(c, "Invalid password", msg)
			return
		}
		if valid, msg := utils.ValidatePassword(req.Password); !valid {
			utils.BadRequest(c, "Invalid password", msg)
			return
		}
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			utils.InternalServerError(c, "Failed to update password", err.Error())
			return
		}
		user.Password = hashed
	}

	if req.Name != "" {
		if valid, msg := utils.ValidateName(req.Name); !valid {
			utils.BadRequest(c, "Invalid name", msg)
			return
		}
		user.Name = utils.SanitizeString(req.Name)
	}
	if req.Surnames != "" {
		user.Surnames = utils.SanitizeString(req.Surnames)
	}
	if req.Phone != "" {
		if valid, msg := utils.ValidatePhone(req.Phone); !valid {
			utils.BadRequest(c, "Invalid phone", msg)
			return
		}
		user.Phone = req.Phone
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	utils.LogInfo("User %d updated", user.ID)
	utils.Success(c, "User updated", user)
}

// DeleteUser removes an account and its tasks
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Select("Tasks").Delete(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user", err.Error())
		return
	}

	utils.LogInfo("User %d deleted", user.ID)
	utils.Success(c, "User deleted", nil)
}

// UploadAvatar stores a new profile image for the authenticated user
func UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/avatars")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	old := user.Avatar
	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("avatar", path).Error; err != nil {
		utils.InternalServerError(c, "Failed to save avatar", err.Error())
		return
	}
	if old != "" {
		if err := utils.DeleteFile(old); err != nil {
			utils.LogDebug("Could not remove previous avatar: %v", err)
		}
	}

	utils.Success(c, "Avatar updated", gin.H{"avatar": path})
}

// GetAvatar serves a user's profile image
func GetAvatar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	if user.Avatar == "" {
		utils.NotFound(c, "User has no avatar")
		return
	}

	c.File(user.Avatar)
}
