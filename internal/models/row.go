package models

import (
	"github.com/google/uuid"
)

// TransportRow represents one delivery line item within a month.
//
// All data columns are free-form text so that partially entered rows can
// be stored as typed. The persistence layer round-trips empty strings,
// the display layer derives the money columns from weight and unit price.
type TransportRow struct {
	DefaultModel
	MonthID     uuid.UUID      `json:"monthId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the month the row belongs to
	Month       TransportMonth `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Date        string         `json:"date" example:"12"`          // Day of month, 1–31
	CarNumber   string         `json:"carNumber" example:"86바1538"` // Vehicle registration
	Company     string         `json:"company" example:"두성산업"`      // Loading site
	Destination string         `json:"destination" example:"평택항"`   // Unloading site
	Item        string         `json:"item" example:"고철"`           // Item description
	Weight      string         `json:"weight" example:"23.46"`      // Weight, up to 3 fractional digits
	Count       string         `json:"count" example:"1"`           // Number of trips
	UnitPrice   string         `json:"unitPrice" example:"12000"`   // Price per weight unit
	SupplyPrice string         `json:"supplyPrice" example:"281520"` // Pre-tax amount
	Tax         string         `json:"tax" example:"28152"`          // 10% tax on the supply price
	TotalPrice  string         `json:"totalPrice" example:"309672"`  // Supply price plus tax
	RowOrder    int            `json:"rowOrder" example:"0"`         // Display and export position within the month
}

func (r TransportRow) Self() string {
	return "Transport Row"
}
