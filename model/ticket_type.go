package model

import "github.com/shopspring/decimal"

type TicketType struct {
	DTO
	EventID           string          `gorm:"size:36;not null;index" json:"eventId"`
	Name              string          `gorm:"size:120;not null" json:"name"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	RemainingQuantity int             `gorm:"not null;default:0" json:"remainingQuantity"`
}

type CreateTicketTypeInput struct {
	Name              string          `json:"name" validate:"required,max=120"`
	Price             decimal.Decimal `json:"price" validate:"-"`
	RemainingQuantity int             `json:"remainingQuantity" validate:"gte=0"`
}
