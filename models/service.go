package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogStatus is the visibility of a catalog entry, not the workflow state of
// a customer's service request.
type CatalogStatus string

const (
	CatalogActive   CatalogStatus = "active"
	CatalogInactive CatalogStatus = "inactive"
)

func (s CatalogStatus) Valid() bool {
	return s == CatalogActive || s == CatalogInactive
}

type Service struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	ServiceID     string        `gorm:"uniqueIndex;not null" json:"serviceId"`
	ServiceName   string        `gorm:"not null" json:"serviceName"`
	ServiceAmount float64       `gorm:"type:decimal(10,2);not null" json:"serviceAmount"`
	Note          string        `json:"note"`
	ServiceStatus CatalogStatus `gorm:"type:varchar(10);default:'active'" json:"serviceStatus"`
	AssignedTo    *uuid.UUID    `gorm:"type:uuid;index" json:"assignedTo"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
