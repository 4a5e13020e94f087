package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engineer represents a field technician who can be assigned to orders.
// Engineers are soft-deleted via IsDeleted so historical orders keep a
// valid reference.
type Engineer struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Field     string    `gorm:"size:128;not null" json:"field"`
	Phone     string    `gorm:"size:32" json:"phone"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Orders []Order `gorm:"foreignKey:EngineerID" json:"orders,omitempty"`
}

// EngineerWithCount pairs an engineer with the number of orders ever
// assigned to it. Populated by listing queries, not stored.
type EngineerWithCount struct {
	Engineer
	OrderCount int64 `json:"orderCount"`
}

func (e *Engineer) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
