package models

import "time"

// User is an account holder of the invoicing dashboard.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	Password     string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed in JSON
	BusinessName string    `gorm:"size:255" json:"business_name,omitempty"`
	BusinessType string    `gorm:"size:100" json:"business_type,omitempty"`
	GSTIN        string    `gorm:"column:gstin;size:15" json:"gstin,omitempty"`
	Address      string    `gorm:"size:500" json:"address,omitempty"`
}
