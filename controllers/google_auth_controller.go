package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleLogin redirects the user to the Google consent screen
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.InternalServerError(c, "Failed to save session", err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// GoogleCallback completes the OAuth exchange and signs the user in
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	expectedState := session.Get("oauth_state")
	if expectedState == nil || c.Query("state") != expectedState.(string) {
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}
	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	// Google may report the address with arbitrary casing; accounts are
	// keyed by the lowercased form
	email := strings.ToLower(googleUser.Email)

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		user = models.User{
			Email:      email,
			Name:       googleUser.GivenName,
			Surnames:   googleUser.FamilyName,
			IsVerified: true,
			GoogleID:   googleUser.ID,
			Username:   email,
		}

		// Google accounts never log in with this password, it only
		// satisfies the non-null column
		hashedPassword, err := utils.HashPassword(uuid.New().String())
		if err != nil {
			utils.InternalServerError(c, "Failed to hash password", err.Error())
			return
		}
		user.Password = hashedPassword

		if err := config.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to create user", err.Error())
			return
		}
	}

	user.LastLoginAt = time.Now()
	config.DB.Save(&user)

	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.SetAuthCookie(c, tokenString)

	redirectURL := fmt.Sprintf("%s?token=%s&user=%s",
		os.Getenv("FRONTEND_URL"),
		url.QueryEscape(tokenString),
		url.QueryEscape(fmt.Sprintf(`{"id":%d,"email":"%s","name":"%s","surnames":"%s"}`,
			user.ID, user.Email, user.Name, user.Surnames)))

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
