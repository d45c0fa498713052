package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Order struct {
	DTO
	BuyerID          string          `gorm:"size:36;not null;index" json:"buyerId"`
	EventID          string          `gorm:"size:36;not null;index" json:"eventId"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	PaymentStatus    PaymentStatus   `gorm:"size:16;not null;default:PENDING;index" json:"paymentStatus"`
	PaymentReference *string         `gorm:"size:64;uniqueIndex" json:"paymentReference,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	Event            *Event          `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Tickets          []Ticket        `gorm:"foreignKey:OrderID" json:"tickets,omitempty"`
}

type CheckoutItemInput struct {
	TicketTypeID string `json:"ticketTypeId" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gt=0,lte=50"`
}

type CheckoutInput struct {
	EventID string              `json:"eventId" validate:"required"`
	Items   []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
}
