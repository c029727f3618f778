package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"agencydesk-backend/config"
	"agencydesk-backend/models"
	"agencydesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FullName   string `json:"fullName" binding:"required"`
	EmployeeID string `json:"employeeId" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=admin employee"`
}

type LoginInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password" binding:"required"`
}

type UpdateAccountInput struct {
	FullName     *string `json:"fullName"`
	Email        *string `json:"email" binding:"omitempty,email"`
	MobileNumber *string `json:"mobileNumber"`
	ProfilePic   *string `json:"profilePic"`
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, int(utils.RefreshTokenTTL.Seconds()), "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

// issueTokens generates the access/refresh pair and persists the refresh token
// on the user row.
func issueTokens(user *models.User) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID.String(), string(user.Role), user.EmployeeID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return "", "", err
	}
	if err := config.DB.Model(user).Update("refresh_token", refreshToken).Error; err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ? OR username = ? OR employee_id = ?",
		input.Email, input.Username, input.EmployeeID).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "User with given email, username or employeeId already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleAdmin
	}

	newUser := models.User{
		FullName:   input.FullName,
		EmployeeID: input.EmployeeID,
		Username:   input.Username,
		Email:      input.Email,
		Password:   input.Password, // hashed in BeforeCreate hook
		Role:       role,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "User registered successfully", gin.H{
		"user": newUser,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" && input.Email == "" && input.EmployeeID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Username, email or employeeId is required")
		return
	}

	var user models.User
	query := config.DB
	switch {
	case input.Username != "":
		query = query.Where("username = ?", strings.TrimSpace(input.Username))
	case input.Email != "":
		query = query.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email)))
	default:
		query = query.Where("employee_id = ?", strings.TrimSpace(input.EmployeeID))
	}

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := issueTokens(&user)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	setAuthCookies(c, accessToken, refreshToken)
	utils.RespondWithData(c, http.StatusOK, "User logged in successfully", gin.H{
		"user":  user,
		"token": accessToken,
	})
}

func Logout(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	config.DB.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", "")

	clearAuthCookies(c)
	utils.RespondWithData(c, http.StatusOK, "User logged out successfully", nil)
}

func RefreshAccessToken(c *gin.Context) {
	incoming, err := c.Cookie("refreshToken")
	if err != nil || incoming == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	claims, err := utils.ParseToken(incoming, "REFRESH_TOKEN_SECRET")
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	sub, _ := claims["sub"].(string)
	var user models.User
	if err := config.DB.First(&user, "id = ?", sub).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	if incoming != user.RefreshToken {
		utils.RespondWithError(c, http.StatusUnauthorized, "Refresh token is expired or used")
		return
	}

	accessToken, refreshToken, err := issueTokens(&user)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	utils.RespondWithData(c, http.StatusOK, "Access token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Current user fetched successfully", gin.H{
		"user": user,
	})
}

func UpdateAccount(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.MobileNumber != nil {
		user.MobileNumber = *input.MobileNumber
	}
	if input.ProfilePic != nil {
		user.ProfilePic = *input.ProfilePic
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update account")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Account updated successfully", gin.H{
		"user": user,
	})
}
