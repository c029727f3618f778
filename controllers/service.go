// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"agencydesk-backend/config"
	"agencydesk-backend/models"
	"agencydesk-backend/services"
	"agencydesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a catalog service
type CreateServiceInput struct {
	ServiceID     string     `json:"serviceId" binding:"required"`
	ServiceName   string     `json:"serviceName" binding:"required"`
	ServiceAmount float64    `json:"serviceAmount" binding:"required,min=0"`
	Note          string     `json:"note"`
	ServiceStatus string     `json:"serviceStatus" binding:"omitempty,oneof=active inactive"`
	AssignedTo    *uuid.UUID `json:"assignedTo"`
}

// UpdateServiceInput defines the expected JSON structure for updating a catalog service
type UpdateServiceInput struct {
	ServiceName   *string    `json:"serviceName"`
	ServiceAmount *float64   `json:"serviceAmount"`
	Note          *string    `json:"note"`
	ServiceStatus *string    `json:"serviceStatus" binding:"omitempty,oneof=active inactive"`
	AssignedTo    *uuid.UUID `json:"assignedTo"`
}

// CreateService creates a new catalog entry for the authenticated owner
func CreateService(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Service
	if err := config.DB.Where("service_id = ?", input.ServiceID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Service with this ID already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	status := models.CatalogStatus(input.ServiceStatus)
	if status == "" {
		status = models.CatalogActive
	}

	service := models.Service{
		UserID:        ownerID,
		ServiceID:     input.ServiceID,
		ServiceName:   input.ServiceName,
		ServiceAmount: input.ServiceAmount,
		Note:          input.Note,
		ServiceStatus: status,
		AssignedTo:    input.AssignedTo,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Service created successfully", gin.H{
		"service": service,
	})
}

// GetServices retrieves all catalog services owned by the authenticated user.
// Employees only see active entries.
func GetServices(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", ownerID)

	role, _ := c.Get("role")
	if roleStr, _ := role.(string); roleStr == string(models.RoleEmployee) {
		query = query.Where("service_status = ?", models.CatalogActive)
	}

	var catalog []models.Service
	if err := query.Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Services retrieved successfully", gin.H{
		"services": catalog,
	})
}

// GetService retrieves a specific catalog service by ID
func GetService(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", ownerID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Service retrieved successfully", gin.H{
		"service": service,
	})
}

// UpdateService updates an existing catalog service
func UpdateService(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", ownerID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ServiceName != nil {
		service.ServiceName = *input.ServiceName
	}
	if input.ServiceAmount != nil {
		service.ServiceAmount = *input.ServiceAmount
	}
	if input.Note != nil {
		service.Note = *input.Note
	}
	if input.ServiceStatus != nil {
		service.ServiceStatus = models.CatalogStatus(*input.ServiceStatus)
	}
	if input.AssignedTo != nil {
		service.AssignedTo = input.AssignedTo
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Service updated successfully", gin.H{
		"service": service,
	})
}

// DeleteService soft deletes a catalog service
func DeleteService(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", ownerID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Service deleted successfully", nil)
}

// GetNextServiceID allocates and returns the next service ID
func GetNextServiceID(c *gin.Context) {
	allocator := services.NewIDAllocator(config.DB)
	nextID, err := allocator.Next(c.Request.Context(), services.NamespaceServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate service ID")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Next service ID generated successfully", gin.H{
		"nextId": nextID,
	})
}
