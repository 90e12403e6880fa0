package models

import (
	"time"

	"github.com/google/uuid"
)

// Guardian is a student's responsible adult based on the 'guardians' table
type Guardian struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	Name            string       `json:"name" db:"name" example:"Khaled Omar"`
	Phone           string       `json:"phone" db:"phone" example:"01012345678"`
	AlternatePhone  string       `json:"alternatePhone,omitempty" db:"alternate_phone"`
	Address         string       `json:"address,omitempty" db:"address"`
	Relationship    Relationship `json:"relationship" db:"relationship" example:"father"`
	WhatsAppEnabled bool         `json:"whatsAppEnabled" db:"whatsapp_enabled" example:"true"`
	WhatsAppPhone   string       `json:"whatsAppPhone,omitempty" db:"whatsapp_phone"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}

// WhatsAppNumber returns the dedicated WhatsApp number, or the main phone
func (g *Guardian) WhatsAppNumber() string {
	if g.WhatsAppPhone != "" {
		return g.WhatsAppPhone
	}
	return g.Phone
}
