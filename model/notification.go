package model

import "time"

// OrderUpdate is the message broadcast on an order's realtime channel.
type OrderUpdate struct {
	OrderID          string        `json:"orderId"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	TicketsGenerated int           `json:"ticketsGenerated,omitempty"`
	At               time.Time     `json:"at"`
}
