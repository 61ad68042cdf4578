// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an account that owns journeys and recipes.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Journeys  []Journey `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipes   []Recipe  `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE" json:"-"`
}
