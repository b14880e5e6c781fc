package models

import (
	"gorm.io/gorm"
)

// Participation links a member to an event. Rows survive member soft
// deletion so historical attendance stays joinable; they are removed
// when their event is deleted.
type Participation struct {
	gorm.Model
	MembreID    uint   `json:"id_membre" gorm:"column:id_membre;not null"`
	EvenementID uint   `json:"id_evenement" gorm:"column:id_evenement;not null"`
	Membre      Member `json:"-" gorm:"foreignKey:MembreID"`
	Evenement   Event  `json:"-" gorm:"foreignKey:EvenementID"`
}

func (Participation) TableName() string {
	return "participations"
}
