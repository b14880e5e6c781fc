package models

import (
	"gorm.io/gorm"
)

// Club is a singleton: exactly one row is seeded at initialization and
// only ever updated in place.
type Club struct {
	gorm.Model
	Nom         string `json:"nom"`
	Description string `json:"description"`
}

func (Club) TableName() string {
	return "club"
}
