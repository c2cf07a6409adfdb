package models

import "time"

// AppSettingsID is the id of the single global settings document.
const AppSettingsID = "global"

// AppSettings holds admin-mutable global rules.
type AppSettings struct {
	ID             string    `bson:"id" json:"id"`
	FinePerDay     float64   `bson:"finePerDay" json:"finePerDay"`
	CurrentWheelID string    `bson:"currentWheelId" json:"currentWheelId"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
