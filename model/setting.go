package model

import "time"

// Setting is a runtime-editable key/value pair.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:120" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RotateSecretInput struct {
	Secret string `json:"secret" validate:"required,min=16,max=256"`
}
