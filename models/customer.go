package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the workflow state of a service request, also used as the
// customer's overall status. Distinct from CatalogStatus on the Service catalog.
type RequestStatus string

const (
	StatusPendingDocs RequestStatus = "Pending Docs"
	StatusPending     RequestStatus = "Pending"
	StatusApply       RequestStatus = "Apply"
	StatusInProgress  RequestStatus = "In Progress"
	StatusSubmitted   RequestStatus = "Submitted"
	StatusCompleted   RequestStatus = "Completed"
	StatusDelivered   RequestStatus = "Delivered"
	StatusCancelled   RequestStatus = "Cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPendingDocs, StatusPending, StatusApply, StatusInProgress,
		StatusSubmitted, StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMode string

const (
	PayCash       PaymentMode = "Cash"
	PayCard       PaymentMode = "Card"
	PayOnline     PaymentMode = "Online"
	PayUPI        PaymentMode = "UPI"
	PayNetBanking PaymentMode = "Net Banking"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PayCash, PayCard, PayOnline, PayUPI, PayNetBanking:
		return true
	}
	return false
}

type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	CustomerID   string      `gorm:"uniqueIndex;not null" json:"customerId"`
	FullName     string      `gorm:"not null" json:"fullName"`
	MobileNumber string      `gorm:"not null" json:"mobileNumber"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	PaidAmount   float64     `gorm:"type:decimal(10,2);default:0.0" json:"paidAmount"`
	DueAmount    float64     `gorm:"type:decimal(10,2);not null" json:"dueAmount"`
	PaymentMode  PaymentMode `gorm:"type:varchar(20);default:'Cash'" json:"paymentMode"`

	OverStatus   RequestStatus `gorm:"type:varchar(20);default:'Pending'" json:"overStatus"`
	Note         string        `json:"note"`
	DeliveryDate *time.Time    `gorm:"index" json:"deliveryDate"`

	SelectedServices []ServiceRequest `gorm:"foreignKey:CustomerRef;constraint:OnDelete:CASCADE" json:"selectedServices"`

	gorm.Model `json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// ServiceRequest is one purchased service inside a customer engagement. It has
// its own workflow status, independent of the parent's overall status and of the
// catalog entry it was created from.
type ServiceRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerRef uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	ServiceID         uuid.UUID     `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName       string        `gorm:"not null" json:"serviceName"`
	ApplicationNumber string        `json:"applicationNumber"`
	ServiceAmount     float64       `gorm:"type:decimal(10,2);not null" json:"serviceAmount"`
	ServiceStatus     RequestStatus `gorm:"type:varchar(20);default:'Pending'" json:"serviceStatus"`
	AssignedTo        *uuid.UUID    `gorm:"type:uuid;index" json:"assignedTo"`
	Note              string        `json:"note"`
}

func (ServiceRequest) TableName() string { return "customer_services" }

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
