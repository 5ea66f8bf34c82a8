// Package domain contains the client (billed party) model and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a billed party in a tenant's address book.
type Client struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index" json:"tenant_id"`

	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"type:text" json:"email,omitempty"`
	GSTIN string `gorm:"column:gstin;type:text" json:"gstin,omitempty"`

	AddressLine1 string `gorm:"type:text" json:"address_line1,omitempty"`
	AddressLine2 string `gorm:"type:text" json:"address_line2,omitempty"`
	City         string `gorm:"type:text" json:"city,omitempty"`
	State        string `gorm:"type:text" json:"state,omitempty"`
	PinCode      string `gorm:"column:pin_code;type:text" json:"pin_code,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
