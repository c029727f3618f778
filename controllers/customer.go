package controllers

import (
	"errors"
	"net/http"
	"time"

	"agencydesk-backend/config"
	"agencydesk-backend/models"
	"agencydesk-backend/services"
	"agencydesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequestInput defines one selected service inside a customer payload
type ServiceRequestInput struct {
	ServiceID         uuid.UUID  `json:"serviceId" binding:"required"`
	ServiceName       string     `json:"serviceName" binding:"required"`
	ApplicationNumber string     `json:"applicationNumber"`
	ServiceAmount     float64    `json:"serviceAmount" binding:"required,min=0"`
	ServiceStatus     string     `json:"serviceStatus"`
	AssignedTo        *uuid.UUID `json:"assignedTo"`
	Note              string     `json:"note"`
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	CustomerID       string                `json:"customerId" binding:"required"`
	FullName         string                `json:"fullName" binding:"required"`
	MobileNumber     string                `json:"mobileNumber" binding:"required"`
	TotalAmount      float64               `json:"totalAmount" binding:"required,min=0"`
	PaidAmount       float64               `json:"paidAmount" binding:"min=0"`
	DueAmount        float64               `json:"dueAmount"`
	PaymentMode      string                `json:"paymentMode"`
	Note             string                `json:"note"`
	DeliveryDate     *time.Time            `json:"deliveryDate"`
	SelectedServices []ServiceRequestInput `json:"selectedServices"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FullName         *string                `json:"fullName"`
	MobileNumber     *string                `json:"mobileNumber"`
	TotalAmount      *float64               `json:"totalAmount"`
	PaidAmount       *float64               `json:"paidAmount"`
	DueAmount        *float64               `json:"dueAmount"`
	PaymentMode      *string                `json:"paymentMode"`
	OverStatus       *string                `json:"overStatus"`
	Note             *string                `json:"note"`
	DeliveryDate     *time.Time             `json:"deliveryDate"`
	SelectedServices *[]ServiceRequestInput `json:"selectedServices"`
}

func buildServiceRequests(inputs []ServiceRequestInput) ([]models.ServiceRequest, error) {
	requests := make([]models.ServiceRequest, 0, len(inputs))
	for _, item := range inputs {
		status := models.RequestStatus(item.ServiceStatus)
		if status == "" {
			status = models.StatusPending
		}
		if !status.Valid() {
			return nil, errors.New("invalid service status: " + item.ServiceStatus)
		}
		requests = append(requests, models.ServiceRequest{
			ServiceID:         item.ServiceID,
			ServiceName:       item.ServiceName,
			ApplicationNumber: item.ApplicationNumber,
			ServiceAmount:     item.ServiceAmount,
			ServiceStatus:     status,
			AssignedTo:        item.AssignedTo,
			Note:              item.Note,
		})
	}
	return requests, nil
}

func ownerUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCustomer creates a new customer engagement for the authenticated owner
func CreateCustomer(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.MobileNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
		return
	}

	paymentMode := models.PaymentMode(input.PaymentMode)
	if paymentMode == "" {
		paymentMode = models.PayCash
	}
	if !paymentMode.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment mode")
		return
	}

	requests, err := buildServiceRequests(input.SelectedServices)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.Customer
	if err := config.DB.Where("customer_id = ?", input.CustomerID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer ID already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		UserID:           ownerID,
		CustomerID:       input.CustomerID,
		FullName:         input.FullName,
		MobileNumber:     input.MobileNumber,
		TotalAmount:      input.TotalAmount,
		PaidAmount:       input.PaidAmount,
		DueAmount:        input.DueAmount,
		PaymentMode:      paymentMode,
		Note:             input.Note,
		DeliveryDate:     input.DeliveryDate,
		SelectedServices: requests,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Customer created successfully", gin.H{
		"customer": customer,
	})
}

// GetCustomers retrieves all customers owned by the authenticated user, newest
// first. The due amount is recomputed from total and paid on the way out.
func GetCustomers(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Preload("SelectedServices").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	for i := range customers {
		customers[i].DueAmount = customers[i].TotalAmount - customers[i].PaidAmount
	}

	utils.RespondWithData(c, http.StatusOK, "Customers retrieved successfully", gin.H{
		"customers": customers,
	})
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("SelectedServices").
		Where("user_id = ? AND id = ?", ownerID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	customer.DueAmount = customer.TotalAmount - customer.PaidAmount

	utils.RespondWithData(c, http.StatusOK, "Customer retrieved successfully", gin.H{
		"customer": customer,
	})
}

// UpdateCustomer updates an existing customer; a provided selectedServices list
// replaces the stored one wholesale.
func UpdateCustomer(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("user_id = ? AND id = ?", ownerID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.MobileNumber != nil {
		if !utils.ValidatePhone(*input.MobileNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
			return
		}
		customer.MobileNumber = *input.MobileNumber
	}
	if input.TotalAmount != nil {
		customer.TotalAmount = *input.TotalAmount
	}
	if input.PaidAmount != nil {
		customer.PaidAmount = *input.PaidAmount
	}
	if input.DueAmount != nil {
		customer.DueAmount = *input.DueAmount
	}
	if input.PaymentMode != nil {
		mode := models.PaymentMode(*input.PaymentMode)
		if !mode.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment mode")
			return
		}
		customer.PaymentMode = mode
	}
	if input.OverStatus != nil {
		status := models.RequestStatus(*input.OverStatus)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid overall status")
			return
		}
		customer.OverStatus = status
	}
	if input.Note != nil {
		customer.Note = *input.Note
	}
	if input.DeliveryDate != nil {
		customer.DeliveryDate = input.DeliveryDate
	}

	var requests []models.ServiceRequest
	if input.SelectedServices != nil {
		requests, err = buildServiceRequests(*input.SelectedServices)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if input.SelectedServices != nil {
			if err := tx.Where("customer_ref = ?", customer.ID).
				Delete(&models.ServiceRequest{}).Error; err != nil {
				return err
			}
			customer.SelectedServices = requests
		}
		return tx.Save(&customer).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Customer updated successfully", gin.H{
		"customer": customer,
	})
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", ownerID, customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Customer deleted successfully", nil)
}

// GetNextCustomerID allocates and returns the next customer ID
func GetNextCustomerID(c *gin.Context) {
	allocator := services.NewIDAllocator(config.DB)
	nextID, err := allocator.Next(c.Request.Context(), services.NamespaceCustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate customer ID")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Next customer ID generated successfully", gin.H{
		"nextId": nextID,
	})
}
