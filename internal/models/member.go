package models

import (
	"gorm.io/gorm"
)

const (
	RoleMember = "membre"
	RoleAdmin  = "admin"

	// DefaultPhoto is the sentinel photo reference for members without one.
	DefaultPhoto = "default.png"

	// DateFormat is how date_inscription and event dates are stored,
	// inherited from the legacy schema.
	DateFormat = "2006-01-02"
)

type Member struct {
	gorm.Model
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Email           string `json:"email" gorm:"uniqueIndex;not null"`
	Password        string `json:"-"` // bcrypt hash
	Role            string `json:"role" gorm:"default:membre"`
	DateInscription string `json:"date_inscription"`
	Active          bool   `json:"active"`
	Photo           string `json:"photo" gorm:"default:default.png"`
}

func (Member) TableName() string {
	return "membres"
}
