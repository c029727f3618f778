// controllers/employee.go
package controllers

import (
	"errors"
	"net/http"

	"agencydesk-backend/config"
	"agencydesk-backend/models"
	"agencydesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEmployeeInput struct {
	FullName     string `json:"fullName" binding:"required"`
	EmployeeID   string `json:"employeeId" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"omitempty,oneof=admin employee"`
	MobileNumber string `json:"mobileNumber"`
}

type UpdateEmployeeInput struct {
	FullName     *string `json:"fullName"`
	EmployeeID   *string `json:"employeeId"`
	Username     *string `json:"username"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         *string `json:"role" binding:"omitempty,oneof=admin employee"`
	MobileNumber *string `json:"mobileNumber"`
}

// CreateEmployee registers a new employee account
func CreateEmployee(c *gin.Context) {
	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := config.DB.Where("email = ? OR username = ? OR employee_id = ?",
		input.Email, input.Username, input.EmployeeID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "User with given email, username or employeeId already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleEmployee
	}

	employee := models.User{
		FullName:     input.FullName,
		EmployeeID:   input.EmployeeID,
		Username:     input.Username,
		Email:        input.Email,
		Password:     input.Password, // hashed in BeforeCreate hook
		Role:         role,
		MobileNumber: input.MobileNumber,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Employee created successfully", gin.H{
		"employee": employee,
	})
}

// GetEmployees lists all employee accounts except the caller
func GetEmployees(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var employees []models.User
	if err := config.DB.
		Where("role = ? AND id <> ?", models.RoleEmployee, userID).
		Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Employees fetched successfully", gin.H{
		"employees": employees,
	})
}

// GetEmployee retrieves a single employee account
func GetEmployee(c *gin.Context) {
	employeeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var employee models.User
	if err := config.DB.
		Where("id = ? AND role = ?", employeeUUID, models.RoleEmployee).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Employee fetched successfully", gin.H{
		"employee": employee,
	})
}

// UpdateEmployee updates an employee account, guarding unique fields
func UpdateEmployee(c *gin.Context) {
	employeeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.User
	if err := config.DB.
		Where("id = ? AND role = ?", employeeUUID, models.RoleEmployee).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	uniqueChecks := map[string]*string{
		"email":       input.Email,
		"username":    input.Username,
		"employee_id": input.EmployeeID,
	}
	for column, value := range uniqueChecks {
		if value == nil {
			continue
		}
		var clash models.User
		if err := config.DB.
			Where(column+" = ? AND id <> ?", *value, employee.ID).
			First(&clash).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, column+" already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.EmployeeID != nil {
		employee.EmployeeID = *input.EmployeeID
	}
	if input.Username != nil {
		employee.Username = *input.Username
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Role != nil {
		employee.Role = models.Role(*input.Role)
	}
	if input.MobileNumber != nil {
		employee.MobileNumber = *input.MobileNumber
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Employee updated successfully", gin.H{
		"employee": employee,
	})
}

// DeleteEmployee removes an employee account
func DeleteEmployee(c *gin.Context) {
	employeeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	result := config.DB.
		Where("id = ? AND role = ?", employeeUUID, models.RoleEmployee).
		Delete(&models.User{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Employee deleted successfully", nil)
}
