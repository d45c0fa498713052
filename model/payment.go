package model

import "time"

// WebhookPayload is the subset of the provider's callback body the reconciler reads.
type WebhookPayload struct {
	Event string             `json:"event"`
	Data  WebhookPayloadData `json:"data"`
}

type WebhookPayloadData struct {
	Reference string `json:"reference"`
	Amount    *int64 `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

// WebhookEvent stores every authenticated provider delivery and what was done with it.
type WebhookEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Event          string    `gorm:"size:100;not null;index" json:"event"`
	Reference      string    `gorm:"size:64;index" json:"reference"`
	PayloadJSON    string    `gorm:"type:text;not null" json:"payloadJson"`
	SignatureValid bool      `gorm:"default:false" json:"signatureValid"`
	Outcome        string    `gorm:"size:40" json:"outcome"`
	ProcessedAt    time.Time `json:"processedAt"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
