package model

import "time"

type Event struct {
	DTO
	OrganizerID string       `gorm:"size:36;not null;index" json:"organizerId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Slug        string       `gorm:"size:255;uniqueIndex" json:"slug"`
	Description string       `gorm:"type:text" json:"description"`
	Venue       string       `gorm:"size:255" json:"venue"`
	City        string       `gorm:"size:120" json:"city"`
	Category    string       `gorm:"size:120" json:"category"`
	StartsAt    time.Time    `json:"startsAt"`
	CoverURL    *string      `json:"coverUrl,omitempty"`
	TicketTypes []TicketType `gorm:"foreignKey:EventID" json:"ticketTypes,omitempty"`
}

type CreateEventInput struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	Venue       string    `json:"venue" validate:"required,max=255"`
	City        string    `json:"city" validate:"required,max=120"`
	Category    string    `json:"category" validate:"omitempty,max=120"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
}
