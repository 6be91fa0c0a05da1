package controllers

import (
	"errors"

	"github.com/Govind-619/MemoWorks/services"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
)

// ForgotPasswordRequest represents the forgot password request body
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword starts the reset flow. The response is identical for
// known and unknown emails.
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	if err := services.PasswordReset.RequestReset(req.Email); err != nil {
		utils.LogError("Failed to process reset request: %v", err)
		utils.InternalServerError(c, "Failed to process request", nil)
		return
	}

	utils.Success(c, "If the email exists, a reset link has been sent", nil)
}

// VerifyResetToken checks a token without consuming it, so the frontend
// can decide whether to show the reset form
func VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.BadRequest(c, "Token is required", gin.H{"valid": false})
		return
	}

	if !services.PasswordReset.ValidateToken(token) {
		utils.BadRequest(c, "Invalid or expired token", gin.H{"valid": false})
		return
	}

	utils.Success(c, "Token is valid", gin.H{"valid": true})
}

// ResetPasswordRequest represents the reset password request body
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"newPassword" binding:"required"`
}

// ResetPassword consumes a reset token and sets the new password
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}

	err := services.PasswordReset.ResetPassword(req.Token, req.Password)
	switch {
	case err == nil:
		utils.Success(c, "Password has been reset", nil)
	case errors.Is(err, services.ErrResetTokenUsed):
		utils.BadRequest(c, "Token has already been used", nil)
	case errors.Is(err, services.ErrResetTokenExpired):
		utils.BadRequest(c, "Token has expired", nil)
	case errors.Is(err, services.ErrInvalidResetToken):
		utils.BadRequest(c, "Invalid reset token", nil)
	default:
		utils.LogError("Failed to reset password: %v", err)
		utils.HandleError(c, err)
	}
}
