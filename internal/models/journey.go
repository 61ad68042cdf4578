package models

import "time"

// Journey is a trip with a budget, tracked in the traveller's home currency.
type Journey struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	OwnerUserID         uint          `gorm:"not null;index" json:"ownerUserId"`
	Name                string        `gorm:"size:255;not null" json:"name"`
	HomeCurrency        string        `gorm:"size:3" json:"homeCurr"`
	DestinationCurrency string        `gorm:"size:3" json:"vacCurr"`
	Budget              int           `json:"budget"`
	StartDate           Date          `json:"startDate"`
	EndDate             Date          `json:"endDate"`
	Expenditures        []Expenditure `gorm:"foreignKey:JourneyID;constraint:OnDelete:CASCADE" json:"expenditures,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// Expenditure is a single spend recorded against a journey.
type Expenditure struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JourneyID uint      `gorm:"not null;index" json:"journeyId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Amount    float64   `json:"amount"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

