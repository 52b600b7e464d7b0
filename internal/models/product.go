package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as stored in the content database.
// Photos are in display order; the first photo is the primary image.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand"`
	Category          string          `json:"category"`
	LevelOfProtection string          `json:"level_of_protection"`
	Gender            string          `json:"gender"`
	Price             decimal.Decimal `json:"price"`
	Description       string          `json:"description"`
	URL               string          `json:"url"`
	Photos            []string        `json:"photos"`
	RidingStyle       []string        `json:"riding_style"`
	Season            []string        `json:"season"`
	WaterproofLevel   string          `json:"waterproof_level"`
	Materials         []string        `json:"materials"`
	VeganVerified     string          `json:"vegan_verified"`
	StaffFavorite     bool            `json:"staff_favorite"`
	LastEdited        time.Time       `json:"last_edited"`
}

// DisplayPrice renders the price as a whole-dollar label ("$80").
func (p Product) DisplayPrice() string {
	return "$" + p.Price.Round(0).String()
}
