package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a single repair request tracked through its lifecycle.
// UserID is set at creation and never changes. EngineerID stays nil until
// an admin accepts the order; once set it is only ever overwritten by a
// reassignment, never cleared. Orders are never physically deleted.
type Order struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"`
	EngineerID  *string   `gorm:"size:36;index" json:"engineerId"`
	Location    string    `gorm:"size:256;not null" json:"location"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	Brand       string    `gorm:"size:128;not null" json:"brand"`
	Description string    `gorm:"size:1024;not null" json:"desc"`
	Picture     string    `gorm:"size:512" json:"picture,omitempty"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`

	// Associations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Engineer *Engineer `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
