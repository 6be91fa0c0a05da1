package controllers

import (
	"strings"
	"time"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/services"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles credential authentication and session establishment
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	// Emails and usernames are stored lowercased, so lookups normalize too
	req.Email = strings.ToLower(utils.SanitizeString(req.Email))

	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Login attempt failed - Invalid email format: %s", req.Email)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.SetAuthCookie(c, token)

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Logout revokes the caller's token and clears the auth cookie. The
// token may arrive in the Authorization header or the cookie.
func Logout(c *gin.Context) {
	token := utils.TokenFromRequest(c)
	if token == "" {
		utils.BadRequest(c, "No token provided", nil)
		return
	}

	services.Blacklist.Add(token)
	utils.ClearAuthCookie(c)

	utils.LogInfo("User logged out, token revoked")
	utils.Success(c, "Logout successful", nil)
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Surnames string `json:"surnames"`
	Phone    string `json:"phone"`
}

// Register creates a new account and signs the user in
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Username = strings.ToLower(utils.SanitizeString(req.Username))
	req.Email = strings.ToLower(utils.SanitizeString(req.Email))
	req.Name = utils.SanitizeString(req.Name)
	req.Surnames = utils.SanitizeString(req.Surnames)

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if valid, msg := utils.ValidateName(req.Name); !valid {
		utils.BadRequest(c, "Invalid name", msg)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).
		First(&existing).Error; err == nil {
		utils.LogError("Registration failed - Duplicate account: %s", req.Email)
		utils.Conflict(c, "User already exists", "An account with this email or username already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - Could not hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Surnames: req.Surnames,
		Phone:    req.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Registration failed - Could not create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	if err := utils.SendWelcomeEmail(user.Email, user.Name); err != nil {
		// Registration must not fail because the mail server is down
		utils.LogError("Failed to send welcome email to %s: %v", user.Email, err)
	}

	// A freshly registered user gets a session without logging in again
	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for new user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.SetAuthCookie(c, token)

	utils.LogInfo("User registered successfully: %s", req.Email)
	utils.Created(c, "Registration successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
