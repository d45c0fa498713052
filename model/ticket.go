package model

import "time"

type TicketStatus string

const (
	TicketUnused   TicketStatus = "UNUSED"
	TicketUsed     TicketStatus = "USED"
	TicketRefunded TicketStatus = "REFUNDED"
)

type Ticket struct {
	DTO
	TicketCode          string       `gorm:"size:64;uniqueIndex;not null" json:"ticketCode"`
	UserID              string       `gorm:"size:36;not null;index" json:"userId"`
	TicketTypeID        string       `gorm:"size:36;not null;index" json:"ticketTypeId"`
	OrderID             string       `gorm:"size:36;not null;index" json:"orderId"`
	Status              TicketStatus `gorm:"size:16;not null;default:UNUSED" json:"status"`
	IssuedAt            time.Time    `gorm:"not null" json:"issuedAt"`
	UsedAt              *time.Time   `json:"usedAt,omitempty"`
	VerificationPayload string       `gorm:"type:text;not null" json:"verificationPayload"`
	TicketType          *TicketType  `gorm:"foreignKey:TicketTypeID" json:"ticketType,omitempty"`
}

type VerifyTicketInput struct {
	Payload string `json:"payload" validate:"required"`
}

type TicketResponse struct {
	ID                  string       `json:"id"`
	TicketCode          string       `json:"ticketCode"`
	TicketTypeID        string       `json:"ticketTypeId"`
	Status              TicketStatus `json:"status"`
	IssuedAt            time.Time    `json:"issuedAt"`
	UsedAt              *time.Time   `json:"usedAt,omitempty"`
	VerificationPayload string       `json:"verificationPayload"`
}
