package models

import (
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Titre       string `json:"titre" gorm:"not null"`
	Date        string `json:"date" gorm:"not null"`
	Lieu        string `json:"lieu" gorm:"not null"`
	Description string `json:"description"`
}

func (Event) TableName() string {
	return "evenements"
}
